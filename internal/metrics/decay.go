package metrics

import (
	"math"

	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

// AmplitudeDecay tracks the turning points of the swing and reports the
// worst ratio between successive peak amplitudes. Damped runs should stay
// below 1.
type AmplitudeDecay struct {
	name      string
	prevOmega float64
	lastPeak  float64
	worst     float64
	samples   int
}

func NewAmplitudeDecay() *AmplitudeDecay {
	return &AmplitudeDecay{name: "amplitude_decay"}
}

func (a *AmplitudeDecay) Name() string { return a.name }

func (a *AmplitudeDecay) Observe(st pendulum.State) {
	// A sign change of omega marks a turning point.
	if a.samples > 0 && (a.prevOmega > 0 && st.Omega <= 0 || a.prevOmega < 0 && st.Omega >= 0) {
		peak := math.Abs(st.Theta)
		if a.lastPeak > 0 {
			a.worst = math.Max(a.worst, peak/a.lastPeak)
		}
		a.lastPeak = peak
	}
	a.prevOmega = st.Omega
	a.samples++
}

func (a *AmplitudeDecay) Value() float64 { return a.worst }

func (a *AmplitudeDecay) Reset() {
	a.prevOmega = 0
	a.lastPeak = 0
	a.worst = 0
	a.samples = 0
}
