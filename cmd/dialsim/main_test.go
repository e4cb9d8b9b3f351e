package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/scene"
	"github.com/spf13/cobra"
)

func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile, presetName, scriptFile = "", "", ""
	steps, seed, sensorKind, accumulate = 0, 0, "", false

	cmd := &cobra.Command{Use: "test"}
	sceneFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveConfigLayers(t *testing.T) {
	cmd := flagCmd(t, "--preset", "short", "--steps", "50", "--sensor", "wobble")
	cfg, err := resolveConfig(cmd, []string{"chain"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "chain" || cfg.Chain.Points != 6 || cfg.Steps != 50 || cfg.Sensor.Kind != "wobble" {
		t.Errorf("got scene=%s points=%d steps=%d sensor=%s",
			cfg.Scene, cfg.Chain.Points, cfg.Steps, cfg.Sensor.Kind)
	}
}

func TestResolveConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liquid.yaml")
	want := config.GetPreset("liquid", "drop")
	if err := config.Save(path, want); err != nil {
		t.Fatal(err)
	}

	cmd := flagCmd(t, "--config", path)
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "liquid" || cfg.Liquid.Rows != want.Liquid.Rows {
		t.Errorf("scene=%s rows=%d", cfg.Scene, cfg.Liquid.Rows)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := flagCmd(t, "--preset", "nope")
	if _, err := resolveConfig(cmd, []string{"ragdoll"}); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestNewDriverUnknownScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = "pinball"
	if _, err := newDriver(scene.NewRegistry(), cfg); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("err = %v", err)
	}
}

func TestLiveLogStaysOffTerminal(t *testing.T) {
	var term bytes.Buffer
	log.SetOutput(&term)
	defer log.SetOutput(os.Stderr)
	defer log.SetPrefix(log.Prefix())

	closeLog, err := liveLog("")
	if err != nil {
		t.Fatal(err)
	}
	log.Print("tick")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	if term.Len() != 0 {
		t.Errorf("log without a file reached the terminal: %q", term.String())
	}

	path := filepath.Join(t.TempDir(), "live.log")
	closeLog, err = liveLog(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Print("tick")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "tick") {
		t.Errorf("log file = %q, want the tick line", data)
	}
	if term.Len() != 0 {
		t.Errorf("log with a file reached the terminal: %q", term.String())
	}
}
