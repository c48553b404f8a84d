package pendulum

import (
	"math"
	"testing"
)

func defaultParams() Params {
	return Params{
		RodLength:  5.0,
		Damping:    0.3,
		Gravity:    9.8,
		Dt:         0.001,
		ThetaLimit: 0.01 * math.Pi / 180,
		OmegaLimit: 0.001 * math.Pi / 180,
		Repeat:     true,
	}
}

func TestBobPosition(t *testing.T) {
	x, y := BobPosition(0, 5)
	if math.Abs(x) > 1e-12 || math.Abs(y+5) > 1e-12 {
		t.Errorf("at rest expected (0,-5), got (%f,%f)", x, y)
	}

	x, y = BobPosition(math.Pi/2, 5)
	if math.Abs(x-5) > 1e-12 || math.Abs(y) > 1e-12 {
		t.Errorf("at 90 degrees expected (5,0), got (%f,%f)", x, y)
	}
}

func TestStepDeterministic(t *testing.T) {
	p := defaultParams()
	a := New(45, 0, p)
	b := New(45, 0, p)

	for i := 0; i < 1000; i++ {
		sa, sta := a.Step()
		sb, stb := b.Step()
		if sa != sb || sta != stb {
			t.Fatalf("step %d diverged: %+v vs %+v", i, sa, sb)
		}
	}
}

func TestTimeLimitScenario(t *testing.T) {
	p := defaultParams()
	p.TimeLimit = 1.0
	integ := New(45, 0, p)

	steps := 0
	var last State
	var status Status
	for {
		last, status = integ.Step()
		steps++
		if status == Stopped {
			break
		}
		if steps > 2000 {
			t.Fatal("never stopped")
		}
	}

	if steps != 1000 {
		t.Errorf("expected exactly 1000 steps, got %d", steps)
	}
	if math.Abs(last.T-1.0) > 1e-9 {
		t.Errorf("expected final t 1.0, got %.15f", last.T)
	}

	// Stopped latches: further calls do not advance.
	again, status := integ.Step()
	if status != Stopped {
		t.Errorf("expected stopped after stop, got %v", status)
	}
	if again != last {
		t.Errorf("state changed after stop: %+v vs %+v", again, last)
	}
}

func TestTimeLimitIgnoresThresholds(t *testing.T) {
	p := defaultParams()
	p.TimeLimit = 0.5
	p.ThetaLimit = 10 // radians, absurdly wide
	p.OmegaLimit = 10 // would trigger immediately in threshold mode
	p.Repeat = false

	integ := New(45, 0, p)
	_, status := integ.Step()
	if status != Continue {
		t.Errorf("expected continue under time limit, got %v", status)
	}
}

func TestResetRestoresInitialExactly(t *testing.T) {
	p := defaultParams()
	// Wide thresholds so the first pass near equilibrium triggers a reset.
	p.ThetaLimit = 5 * math.Pi / 180
	p.OmegaLimit = 100
	p.Repeat = true

	integ := New(45, 0, p)
	theta0 := integ.State().Theta

	resets := 0
	for i := 0; i < 200000 && resets < 3; i++ {
		st, status := integ.Step()
		if status == Reset {
			resets++
			if st.Theta != theta0 || st.Omega != 0 || st.T != 0 {
				t.Fatalf("reset %d did not restore initial state: %+v", resets, st)
			}
		}
	}
	if resets < 3 {
		t.Fatalf("expected at least 3 resets, got %d", resets)
	}
}

func TestInitialStateBelowThresholdStopsImmediately(t *testing.T) {
	p := defaultParams()
	p.Repeat = false

	integ := New(0.005, 0, p)
	_, status := integ.Step()
	if status != Stopped {
		t.Errorf("expected immediate stop for sub-threshold initial state, got %v", status)
	}
}

func TestAmplitudeDecay(t *testing.T) {
	p := defaultParams()
	p.TimeLimit = 60
	integ := New(45, 0, p)

	var peaks []float64
	prev := integ.State()
	for i := 0; i < 40000; i++ {
		st, status := integ.Step()
		if status == Stopped {
			break
		}
		// A sign change of omega marks a turning point of the swing.
		if prev.Omega > 0 && st.Omega <= 0 || prev.Omega < 0 && st.Omega >= 0 {
			peaks = append(peaks, math.Abs(st.Theta))
		}
		prev = st
	}

	if len(peaks) < 4 {
		t.Fatalf("expected several swing peaks, got %d", len(peaks))
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i] >= peaks[i-1] {
			t.Errorf("peak %d did not decay: %f >= %f", i, peaks[i], peaks[i-1])
		}
	}
}

func TestEnergyConservedWithoutDamping(t *testing.T) {
	p := defaultParams()
	p.Damping = 0
	p.TimeLimit = 10
	integ := New(45, 0, p)

	e0 := Energy(integ.State(), p)
	for {
		st, status := integ.Step()
		if status == Stopped {
			e := Energy(st, p)
			if math.Abs(e-e0) > 0.05*math.Abs(e0) {
				t.Errorf("energy drifted from %f to %f", e0, e)
			}
			return
		}
	}
}
