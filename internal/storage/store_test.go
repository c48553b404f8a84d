package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Anthony-Giacinto/pendulum/internal/sim"
)

func sampleSeries() *sim.Series {
	return &sim.Series{
		Times:  []float64{0.001, 0.002, 0.003},
		Thetas: []float64{0.785, 0.784, 0.782},
		Omegas: []float64{0.0, -0.001, -0.003},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{Theta: 45, Dt: 0.001, RodLength: 5, Damping: 0.3, Gravity: 9.8, Repeat: true}
	runID, err := st.Save(meta, sampleSeries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Theta != 45 || loaded.Steps != 3 {
		t.Errorf("unexpected metadata: %+v", loaded)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series.Times))
	}
	if series.Thetas[0] != 0.785 {
		t.Errorf("expected theta 0.785, got %f", series.Thetas[0])
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/nonexistent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListFindsSavedRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save(RunMetadata{Theta: 10}, sampleSeries()); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(RunMetadata{Theta: 20}, sampleSeries()); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := &RunMetadata{ID: "run_1", Theta: 45}
	if err := ExportJSON(&buf, meta, sampleSeries()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"thetas"`) || !strings.Contains(out, `"run_1"`) {
		t.Errorf("unexpected export output: %s", out)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSeriesCSV(&buf, sampleSeries()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,theta,omega" {
		t.Errorf("unexpected header: %s", lines[0])
	}
}
