package export

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Anthony-Giacinto/pendulum/internal/sim"
)

// WritePlotPNG renders the angle-vs-time plot of a recorded run to a PNG
// file. Angles are plotted in degrees to match the tool's interface units.
func WritePlotPNG(path string, series *sim.Series) error {
	if len(series.Times) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Pendulum Angle"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "angle (deg)"

	pts := make(plotter.XYs, len(series.Times))
	for i := range series.Times {
		pts[i].X = series.Times[i]
		pts[i].Y = series.Thetas[i] * 180 / math.Pi
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Add(plotter.NewGrid())

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
