package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

// Config bounds and shapes the animation loop.
type Config struct {
	Rate  int // max loop iterations per second
	Trail bool
	Plot  bool
}

// Driver bridges the integrator to rendering and plotting collaborators
// at a bounded rate. It is single-threaded: one control flow advances the
// physics and pushes each frame.
type Driver struct {
	integ     *pendulum.Integrator
	renderer  Renderer
	plotter   Plotter
	cfg       Config
	metrics   []Metric
	observers []Observer
}

func NewDriver(integ *pendulum.Integrator, renderer Renderer, plotter Plotter, cfg Config) *Driver {
	return &Driver{
		integ:    integ,
		renderer: renderer,
		plotter:  plotter,
		cfg:      cfg,
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Run loops until the integrator stops or the context is cancelled. Each
// iteration waits for the next tick boundary, steps the integrator once
// and forwards the bob position to the renderer. The wait is advisory: it
// caps throughput without any real-time guarantee.
//
// On a reset the trail and the plot are both cleared, matching the
// discontinuous jump the renderer shows.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.validate(); err != nil {
		return err
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	interval := time.Second / time.Duration(d.cfg.Rate)
	next := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if now := time.Now(); now.Before(next) {
			time.Sleep(next.Sub(now))
		}
		next = next.Add(interval)

		st, status := d.integ.Step()

		for _, m := range d.metrics {
			m.Observe(st)
		}
		for _, o := range d.observers {
			o.OnStep(st, status)
		}

		rod := d.integ.Params().RodLength
		x, y := pendulum.BobPosition(st.Theta, rod)
		d.renderer.SetPosition(x, y)

		switch status {
		case pendulum.Stopped:
			return nil
		case pendulum.Reset:
			d.renderer.ClearTrail()
			if d.cfg.Plot && d.plotter != nil {
				d.plotter.Clear()
			}
		default:
			if d.cfg.Trail {
				d.renderer.AppendTrail(x, y)
			}
		}

		if d.cfg.Plot && d.plotter != nil {
			d.plotter.AppendPoint(st.T, st.Theta*180/math.Pi)
		}
	}
}

func (d *Driver) validate() error {
	if d.cfg.Rate <= 0 {
		return fmt.Errorf("animation rate must be positive, got %d", d.cfg.Rate)
	}
	if d.renderer == nil {
		return fmt.Errorf("driver needs a renderer")
	}
	return nil
}
