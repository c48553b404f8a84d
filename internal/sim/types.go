package sim

import "github.com/Anthony-Giacinto/pendulum/internal/pendulum"

// Renderer receives bob positions in cartesian meters, pivot at the
// origin, y up. Implementations own all drawing state.
type Renderer interface {
	SetPosition(x, y float64)
	AppendTrail(x, y float64)
	ClearTrail()
}

// Plotter accumulates (time, angle) pairs for an angle-vs-time graph.
// Angles are in degrees.
type Plotter interface {
	AppendPoint(t, thetaDeg float64)
	Clear()
}

// Metric observes every step of a run and reduces it to a number.
type Metric interface {
	Name() string
	Observe(st pendulum.State)
	Value() float64
	Reset()
}

// Observer is notified after every step with the step's status.
type Observer interface {
	OnStep(st pendulum.State, status pendulum.Status)
}

// NopRenderer discards positions. Useful for headless runs.
type NopRenderer struct{}

func (NopRenderer) SetPosition(x, y float64) {}
func (NopRenderer) AppendTrail(x, y float64) {}
func (NopRenderer) ClearTrail()              {}

// Series records the sampled trajectory of a run.
type Series struct {
	Times  []float64
	Thetas []float64
	Omegas []float64
}

func (s *Series) OnStep(st pendulum.State, status pendulum.Status) {
	s.Times = append(s.Times, st.T)
	s.Thetas = append(s.Thetas, st.Theta)
	s.Omegas = append(s.Omegas, st.Omega)
}
