package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trace := &Trace{Columns: []string{"boundary", "kinetic"}}
	trace.Append(1, []float64{0, 12.5})
	trace.Append(2, []float64{0.25, 10})

	meta := RunMetadata{
		Scene:   "chain",
		Seed:    42,
		Steps:   2,
		Metrics: map[string]float64{"kinetic": 11.25},
	}

	runID, err := st.Save(meta, trace)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, runID, "metadata.json")); err != nil {
		t.Errorf("metadata file not created: %v", err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scene != "chain" || loaded.Seed != 42 {
		t.Errorf("unexpected metadata %+v", loaded)
	}
	if loaded.Metrics["kinetic"] != 11.25 {
		t.Errorf("metrics lost: %v", loaded.Metrics)
	}

	got, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(got.Rows) != 2 || got.Steps[1] != 2 {
		t.Fatalf("trace = %+v", got)
	}
	if k := got.Column("kinetic"); len(k) != 2 || k[0] != 12.5 || k[1] != 10 {
		t.Errorf("kinetic column = %v", k)
	}
	if got.Column("missing") != nil {
		t.Error("unknown column should be nil")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty store: %v, %v", runs, err)
	}

	base := time.Unix(1_700_000_000, 0)
	for i, scene := range []string{"ragdoll", "liquid"} {
		if _, err := st.Save(RunMetadata{Scene: scene, Timestamp: base.Add(time.Duration(i) * time.Minute)}, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Scene != "liquid" {
		t.Errorf("List = %+v, want newest first", runs)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load: %v", err)
	}
	if _, err := st.LoadTrace("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadTrace: %v", err)
	}
}
