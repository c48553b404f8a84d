package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Anthony-Giacinto/pendulum/internal/sim"
	"github.com/Anthony-Giacinto/pendulum/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)

	svg := CanvasToSVG(c, 4)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing xml header")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if CanvasToSVG(nil, 4) != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestWriteCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(1, 1)

	path := filepath.Join(t.TempDir(), "snap.svg")
	written, err := WriteCanvasSVG(path, c)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if written != path {
		t.Errorf("unexpected path: %s", written)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("expected svg content")
	}
}

func TestWritePlotPNG(t *testing.T) {
	series := &sim.Series{
		Times:  []float64{0, 0.001, 0.002},
		Thetas: []float64{0.785, 0.784, 0.783},
		Omegas: []float64{0, -0.001, -0.002},
	}

	path := filepath.Join(t.TempDir(), "angle.png")
	if err := WritePlotPNG(path, series); err != nil {
		t.Fatalf("plot failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty png")
	}
}

func TestWritePlotPNGEmptySeries(t *testing.T) {
	if err := WritePlotPNG(filepath.Join(t.TempDir(), "x.png"), &sim.Series{}); err == nil {
		t.Error("expected error for empty series")
	}
}
