package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	presetName string
	steps      int
	seed       int64
	sensorKind string
	scriptFile string
	accumulate bool
	realtime   bool
	runs       int
	logFile    string
	metricName string
	svgOut     string
	scale      float64
	outFile    string
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("dialsim: ")

	rootCmd := &cobra.Command{
		Use:   "dialsim",
		Short: "physics toys for a round watch face",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				log.SetOutput(io.Discard)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dialsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and store its metric trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	sceneFlags(runCmd)
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "step at wall-clock cadence instead of as fast as possible")
	runCmd.Flags().IntVar(&runs, "runs", 1, "run this many seeds in parallel, starting at --seed")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "interactive watch face in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	sceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scene]",
		Short: "step a scene and write the last frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotScene,
	}
	sceneFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <scene>.svg)")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 1, "pixel scale")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot only this metric")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the metric as SVG (requires --metric)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene] [name]",
		Short: "list presets, or write one out as a config file",
		Args:  cobra.MaximumNArgs(2),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the named preset to this yaml file")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "measure step throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenes,
	}

	rootCmd.AddCommand(runCmd, liveCmd, snapshotCmd, listCmd, plotCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&presetName, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&sensorKind, "sensor", "", "gravity source: fixed, wobble, script or accelerometer")
	cmd.Flags().StringVar(&scriptFile, "script", "", "yaml keyframe file for the script or accelerometer sensor")
	cmd.Flags().BoolVar(&accumulate, "accumulate", false, "step by elapsed time, catching up on slow ticks")
}
