package pendulum

import "math"

// Integrator advances a damped pendulum with explicit Euler steps and
// applies the reset/stop policy configured in Params. It exclusively owns
// its State; callers get value snapshots from Step.
type Integrator struct {
	state  State
	theta0 float64
	omega0 float64
	p      Params
	steps  int
	done   bool
}

// New builds an Integrator from initial angle and angular velocity in
// degrees. The initial values are kept so a reset restores them exactly.
func New(thetaDeg, omegaDeg float64, p Params) *Integrator {
	theta0 := thetaDeg * math.Pi / 180
	omega0 := omegaDeg * math.Pi / 180
	return &Integrator{
		state:  State{Theta: theta0, Omega: omega0, Alpha: accel(theta0, omega0, p)},
		theta0: theta0,
		omega0: omega0,
		p:      p,
	}
}

// Params returns the run configuration.
func (i *Integrator) Params() Params { return i.p }

// State returns the current snapshot without advancing.
func (i *Integrator) State() State { return i.state }

// Done reports whether a previous step returned Stopped.
func (i *Integrator) Done() bool { return i.done }

func accel(theta, omega float64, p Params) float64 {
	return -(p.Gravity/p.RodLength)*math.Sin(theta) - p.Damping*omega
}

// Step advances the pendulum by one Dt and returns the resulting snapshot
// together with a Status. After Stopped has been returned, further calls
// return the final state unchanged.
//
// Elapsed time is derived from the step count rather than accumulated, so
// the time-limit comparison is exact for Dt values that divide the limit.
func (i *Integrator) Step() (State, Status) {
	if i.done {
		return i.state, Stopped
	}

	alpha := accel(i.state.Theta, i.state.Omega, i.p)
	nextTheta := i.state.Theta + i.state.Omega*i.p.Dt
	nextOmega := i.state.Omega + alpha*i.p.Dt
	i.steps++
	t := float64(i.steps) * i.p.Dt

	if i.p.Limited() {
		if t >= i.p.TimeLimit {
			i.state.T = t
			i.state.Alpha = alpha
			i.done = true
			return i.state, Stopped
		}
		return i.commit(nextTheta, nextOmega, t), Continue
	}

	// Threshold mode. The thresholds are evaluated on the updated values,
	// so an initial state already inside them triggers on the very first
	// step. That quirk is deliberate and pinned by tests.
	if math.Abs(nextTheta) <= i.p.ThetaLimit && math.Abs(nextOmega) <= i.p.OmegaLimit {
		if i.p.Repeat {
			return i.reset(), Reset
		}
		i.state.T = t
		i.state.Alpha = alpha
		i.done = true
		return i.state, Stopped
	}
	return i.commit(nextTheta, nextOmega, t), Continue
}

func (i *Integrator) commit(theta, omega, t float64) State {
	i.state = State{
		Theta: theta,
		Omega: omega,
		Alpha: accel(theta, omega, i.p),
		T:     t,
	}
	return i.state
}

// reset restores the original initial values, not the current ones.
func (i *Integrator) reset() State {
	i.steps = 0
	i.state = State{
		Theta: i.theta0,
		Omega: i.omega0,
		Alpha: accel(i.theta0, i.omega0, i.p),
	}
	return i.state
}
