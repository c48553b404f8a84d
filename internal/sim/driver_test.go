package sim

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

type recordingRenderer struct {
	positions [][2]float64
	trail     [][2]float64
	clears    int
}

func (r *recordingRenderer) SetPosition(x, y float64) {
	r.positions = append(r.positions, [2]float64{x, y})
}
func (r *recordingRenderer) AppendTrail(x, y float64) {
	r.trail = append(r.trail, [2]float64{x, y})
}
func (r *recordingRenderer) ClearTrail() {
	r.trail = r.trail[:0]
	r.clears++
}

type recordingPlotter struct {
	times  []float64
	thetas []float64
	clears int
}

func (p *recordingPlotter) AppendPoint(t, thetaDeg float64) {
	p.times = append(p.times, t)
	p.thetas = append(p.thetas, thetaDeg)
}
func (p *recordingPlotter) Clear() {
	p.times = p.times[:0]
	p.thetas = p.thetas[:0]
	p.clears++
}

type funcObserver func(st pendulum.State, status pendulum.Status)

func (f funcObserver) OnStep(st pendulum.State, status pendulum.Status) { f(st, status) }

func testParams() pendulum.Params {
	return pendulum.Params{
		RodLength:  5.0,
		Damping:    0.3,
		Gravity:    9.8,
		Dt:         0.001,
		ThetaLimit: 0.01 * math.Pi / 180,
		OmegaLimit: 0.001 * math.Pi / 180,
	}
}

func TestDriverRunsToTimeLimit(t *testing.T) {
	g := NewWithT(t)

	p := testParams()
	p.TimeLimit = 0.05
	integ := pendulum.New(45, 0, p)

	renderer := &recordingRenderer{}
	plotter := &recordingPlotter{}
	d := NewDriver(integ, renderer, plotter, Config{Rate: 1000000, Trail: true, Plot: true})

	series := &Series{}
	d.AddObserver(series)

	err := d.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(renderer.positions).To(HaveLen(50))
	g.Expect(series.Times).To(HaveLen(50))
	g.Expect(series.Times[len(series.Times)-1]).To(BeNumerically("~", 0.05, 1e-9))

	// The stopping step is rendered but not plotted.
	g.Expect(plotter.times).To(HaveLen(49))
	g.Expect(plotter.thetas[0]).To(BeNumerically("~", 45, 1))

	// Positions are the bob coordinates for the reported angles.
	x, y := pendulum.BobPosition(series.Thetas[0], p.RodLength)
	g.Expect(renderer.positions[0][0]).To(Equal(x))
	g.Expect(renderer.positions[0][1]).To(Equal(y))
}

func TestDriverClearsTrailAndPlotOnReset(t *testing.T) {
	g := NewWithT(t)

	p := testParams()
	p.ThetaLimit = 5 * math.Pi / 180
	p.OmegaLimit = 100
	p.Repeat = true
	integ := pendulum.New(45, 0, p)

	renderer := &recordingRenderer{}
	plotter := &recordingPlotter{}
	d := NewDriver(integ, renderer, plotter, Config{Rate: 1000000, Trail: true, Plot: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.AddObserver(funcObserver(func(st pendulum.State, status pendulum.Status) {
		if status == pendulum.Reset {
			cancel()
		}
	}))

	err := d.Run(ctx)
	g.Expect(err).To(MatchError(context.Canceled))

	g.Expect(renderer.clears).To(Equal(1))
	g.Expect(plotter.clears).To(Equal(1))
	// After the clear only the reset point remains in the plot.
	g.Expect(plotter.times).To(HaveLen(1))
	g.Expect(plotter.times[0]).To(BeZero())
}

func TestDriverValidation(t *testing.T) {
	g := NewWithT(t)

	integ := pendulum.New(45, 0, testParams())

	d := NewDriver(integ, NopRenderer{}, nil, Config{Rate: 0})
	g.Expect(d.Run(context.Background())).To(HaveOccurred())

	d = NewDriver(integ, nil, nil, Config{Rate: 100})
	g.Expect(d.Run(context.Background())).To(HaveOccurred())
}

func TestDriverNoTrailWhenDisabled(t *testing.T) {
	g := NewWithT(t)

	p := testParams()
	p.TimeLimit = 0.01
	integ := pendulum.New(45, 0, p)

	renderer := &recordingRenderer{}
	d := NewDriver(integ, renderer, nil, Config{Rate: 1000000})

	g.Expect(d.Run(context.Background())).To(Succeed())
	g.Expect(renderer.trail).To(BeEmpty())
	g.Expect(renderer.positions).NotTo(BeEmpty())
}
