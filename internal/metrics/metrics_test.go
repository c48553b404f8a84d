package metrics

import (
	"testing"

	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

func runParams(damping float64) pendulum.Params {
	return pendulum.Params{
		RodLength: 5.0,
		Damping:   damping,
		Gravity:   9.8,
		Dt:        0.001,
		TimeLimit: 20,
	}
}

func TestEnergyDriftSmallWithoutDamping(t *testing.T) {
	p := runParams(0)
	integ := pendulum.New(45, 0, p)
	m := NewEnergy(p)

	m.Observe(integ.State())
	for {
		st, status := integ.Step()
		m.Observe(st)
		if status == pendulum.Stopped {
			break
		}
	}

	if m.Value() > 0.1 {
		t.Errorf("undamped energy drift too large: %f", m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	p := runParams(0.3)
	m := NewEnergy(p)

	m.Observe(pendulum.State{Theta: 1.0, Omega: 1.0})
	m.Observe(pendulum.State{Theta: 0.1, Omega: 0.0})
	if m.Value() == 0 {
		t.Error("expected non-zero drift")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestAmplitudeDecayDamped(t *testing.T) {
	p := runParams(0.3)
	integ := pendulum.New(45, 0, p)
	m := NewAmplitudeDecay()

	for {
		st, status := integ.Step()
		m.Observe(st)
		if status == pendulum.Stopped {
			break
		}
	}

	if m.Value() <= 0 {
		t.Fatal("expected at least two peaks")
	}
	if m.Value() >= 1 {
		t.Errorf("damped amplitude did not decay: worst ratio %f", m.Value())
	}
}

func TestAmplitudeDecayNames(t *testing.T) {
	if NewAmplitudeDecay().Name() != "amplitude_decay" {
		t.Error("unexpected metric name")
	}
	if NewEnergy(runParams(0)).Name() != "energy_drift" {
		t.Error("unexpected metric name")
	}
}
