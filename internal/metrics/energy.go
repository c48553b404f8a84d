package metrics

import (
	"math"

	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

// Energy reports the maximum relative drift of mechanical energy over a
// run. For an undamped pendulum this measures pure integration error; with
// damping it simply reflects dissipation.
type Energy struct {
	name    string
	params  pendulum.Params
	initial float64
	drift   float64
	samples int
}

func NewEnergy(p pendulum.Params) *Energy {
	return &Energy{name: "energy_drift", params: p}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(st pendulum.State) {
	energy := pendulum.Energy(st, e.params)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.drift = math.Max(e.drift, drift)
	}
}

func (e *Energy) Value() float64 { return e.drift }

func (e *Energy) Reset() {
	e.initial = 0
	e.drift = 0
	e.samples = 0
}
