package pendulum

import "math"

// State is a snapshot of the pendulum at one step. Angles are in radians.
type State struct {
	Theta float64
	Omega float64
	Alpha float64
	T     float64
}

// Status reports the outcome of a single integration step.
type Status int

const (
	Continue Status = iota
	Reset
	Stopped
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Reset:
		return "reset"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Params holds the immutable physical and policy configuration of a run.
// RodLength and Dt must be positive; this is a precondition, not checked
// at runtime. TimeLimit <= 0 means no time limit, in which case the
// theta/omega thresholds decide when the run resets or stops.
type Params struct {
	RodLength  float64
	Damping    float64
	Gravity    float64
	Dt         float64
	TimeLimit  float64
	ThetaLimit float64
	OmegaLimit float64
	Repeat     bool
}

// Limited reports whether the run stops on elapsed time rather than on
// the theta/omega thresholds.
func (p Params) Limited() bool { return p.TimeLimit > 0 }

// BobPosition converts an angle to the cartesian position of the bob,
// with the pivot at the origin and y pointing up.
func BobPosition(theta, rodLength float64) (x, y float64) {
	return rodLength * math.Sin(theta), -rodLength * math.Cos(theta)
}

// Energy returns the mechanical energy per unit of m*L^2. It is conserved
// (up to integration error) when damping is zero.
func Energy(s State, p Params) float64 {
	return 0.5*s.Omega*s.Omega - (p.Gravity/p.RodLength)*math.Cos(s.Theta)
}
