package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/driver"
	"github.com/san-kum/dialsim/internal/export"
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/scene"
	"github.com/san-kum/dialsim/internal/sensor"
	"github.com/san-kum/dialsim/internal/sim"
	"github.com/san-kum/dialsim/internal/storage"
	"github.com/san-kum/dialsim/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig starts from a config file, a preset or the defaults, in
// that order of preference, then applies flags for the scene in args.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	name := cfg.Scene
	if len(args) > 0 {
		name = args[0]
	}

	if presetName != "" {
		p := config.GetPreset(name, presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets(name))
		}
		if configFile == "" {
			cfg = p
		} else {
			log.Printf("--config given, ignoring preset %s", presetName)
		}
	}
	cfg.Scene = name

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("sensor") {
		cfg.Sensor.Kind = sensorKind
	}
	if flags.Changed("accumulate") {
		cfg.Accumulate = accumulate
	}
	if scriptFile != "" {
		s, err := sensor.LoadScript(scriptFile)
		if err != nil {
			return nil, err
		}
		if cfg.Sensor.Kind != "accelerometer" {
			cfg.Sensor.Kind = "script"
		}
		cfg.Sensor.Keyframes = s.Keyframes()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Clamp()
	return cfg, nil
}

func newDriver(reg *scene.Registry, cfg *config.Config) (*driver.Driver, error) {
	host, err := scene.NewHost(reg, cfg.Scene, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", err, cfg.Scene, reg.List())
	}
	return driver.New(host, driver.Options{
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		Tick:       time.Duration(cfg.TickMs) * time.Millisecond,
		Accumulate: cfg.Accumulate,
	}), nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	src, err := sensor.FromConfig(cfg.Sensor, cfg.Gravity)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("running %s for %d steps (sensor %s, %d runs)", cfg.Scene, cfg.Steps, cfg.Sensor.Kind, runs)
	start := time.Now()
	s := sim.New(nil, src)
	s.WallClock = realtime

	var results []*sim.Result
	if runs > 1 {
		results, err = sim.NewEnsemble(s, runs, cfg.Seed).Run(ctx, cfg)
	} else {
		var res *sim.Result
		res, err = s.Run(ctx, cfg)
		results = []*sim.Result{res}
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, res := range results {
		if res.Interrupted {
			log.Printf("interrupted after %d steps", res.StepsTaken)
		}
		meta := storage.RunMetadata{
			Scene:   res.Scene,
			Preset:  presetName,
			Seed:    res.Seed,
			Width:   cfg.Viewport.Width,
			Height:  cfg.Viewport.Height,
			Steps:   res.StepsTaken,
			Sensor:  cfg.Sensor.Kind,
			Metrics: res.Metrics,
		}
		id, err := st.Save(meta, res.Trace)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		log.Printf("saved %s", id)

		fmt.Printf("run: %s  seed: %d  steps: %d\n", id, res.Seed, res.StepsTaken)
		for _, name := range sortedKeys(res.Metrics) {
			fmt.Printf("  %-10s %.4g\n", name, res.Metrics[name])
		}
	}
	fmt.Printf("time: %v\n", elapsed.Round(time.Millisecond))
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	closeLog, err := liveLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := scene.NewRegistry()
	drv, err := newDriver(reg, cfg)
	if err != nil {
		return err
	}
	gravity := geom.V(cfg.Gravity.X, cfg.Gravity.Y)
	drv.SetGravity(gravity.X, gravity.Y)

	log.Printf("live %s at %dms ticks", cfg.Scene, cfg.TickMs)
	return viz.Run(viz.NewModel(drv, reg.List(), gravity, time.Duration(cfg.TickMs)*time.Millisecond))
}

// liveLog routes the standard logger for the live view. The alt screen
// owns the terminal, so logs go to path or nowhere.
func liveLog(path string) (func() error, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := tea.LogToFile(path, "dialsim")
	if err != nil {
		return nil, err
	}
	return f.Close, nil
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	src, err := sensor.FromConfig(cfg.Sensor, cfg.Gravity)
	if err != nil {
		return err
	}

	cfg.Accumulate = false
	res, err := sim.New(nil, src).Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = cfg.Scene + ".svg"
	}
	if err := os.WriteFile(path, []byte(export.FrameToSVG(res.Last, scale)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (step %d)\n", path, res.Last.Step)
	return nil
}
