package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/export"
	"github.com/san-kum/dialsim/internal/scene"
	"github.com/san-kum/dialsim/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tPRESET\tTIME\tSTEPS\tSENSOR\tBOUNDARY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%.3g\n",
			run.ID,
			run.Scene,
			orDash(run.Preset),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Sensor,
			run.Metrics["boundary"],
		)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Rows) < 2 {
		return fmt.Errorf("no data to plot")
	}

	columns := trace.Columns
	if metricName != "" {
		if trace.Column(metricName) == nil {
			return fmt.Errorf("unknown metric %q (have %s)", metricName, strings.Join(trace.Columns, ", "))
		}
		columns = []string{metricName}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(trace.Rows))

	for _, name := range columns {
		graph := asciigraph.Plot(trace.Column(name),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgOut != "" {
		if metricName == "" {
			return fmt.Errorf("--svg needs --metric")
		}
		svg := export.SeriesToSVG(trace.Column(metricName), 800, 240, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	scenes := scene.NewRegistry().List()
	if len(args) > 0 {
		scenes = args[:1]
	}

	if len(args) == 2 {
		cfg := config.GetPreset(args[0], args[1])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[1], config.ListPresets(args[0]))
		}
		if outFile == "" {
			return fmt.Errorf("--out is required to write a preset")
		}
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	for _, name := range scenes {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Printf("no presets for scene: %s\n", name)
			continue
		}
		fmt.Printf("presets for %s:\n", name)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func benchScenes(cmd *cobra.Command, args []string) error {
	reg := scene.NewRegistry()
	scenes := reg.List()
	if len(args) > 0 {
		if !reg.Has(args[0]) {
			return fmt.Errorf("%w: %s", scene.ErrUnknownScene, args[0])
		}
		scenes = args
	}
	counts := []int{1_000, 10_000}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tENTITIES\tSTEPS\tTIME\tSTEPS/SEC")
	for _, name := range scenes {
		cfg := config.DefaultConfig()
		s, err := reg.New(name, cfg.Viewport.Width, cfg.Viewport.Height, cfg)
		if err != nil {
			return err
		}
		entities := len(s.Frame().Discs)
		for _, n := range counts {
			start := time.Now()
			for i := 0; i < n; i++ {
				s.Step()
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
				name, entities, n, elapsed, float64(n)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
