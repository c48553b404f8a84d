package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

const (
	DefaultTheta         = 45.0
	DefaultOmega         = 0.0
	DefaultDt            = 0.001
	DefaultRodLength     = 5.0
	DefaultDamping       = 0.3
	DefaultGravity       = 9.8
	DefaultAnimationRate = 2000
	DefaultThetaLimit    = 0.01
	DefaultOmegaLimit    = 0.001
	DefaultDisplayWidth  = 1900
	DefaultDisplayHeight = 950
)

// Limits are the threshold pair used by the reset/stop policy when no
// time limit is set. Degrees, like the rest of the interface.
type Limits struct {
	Theta float64 `yaml:"theta"`
	Omega float64 `yaml:"omega"`
}

// Config collects every knob of a run. Angles and thresholds are in
// degrees at this layer; conversion to radians happens in Params.
type Config struct {
	Theta         float64 `yaml:"theta"`
	Omega         float64 `yaml:"omega"`
	Dt            float64 `yaml:"dt"`
	RodLength     float64 `yaml:"rod_length"`
	Damping       float64 `yaml:"dampening_coeff"`
	Gravity       float64 `yaml:"acceleration_from_gravity"`
	Trail         bool    `yaml:"trail"`
	AnimationRate int     `yaml:"animation_rate"`
	TimeLimit     float64 `yaml:"time_limit"` // <= 0 means unset
	Repeat        bool    `yaml:"repeat"`
	Limits        Limits  `yaml:"limits"`
	Labels        bool    `yaml:"labels"`
	DisplayWidth  int     `yaml:"display_width"`
	DisplayHeight int     `yaml:"display_height"`
	Plot          bool    `yaml:"plot"`
}

func DefaultConfig() *Config {
	return &Config{
		Theta:         DefaultTheta,
		Omega:         DefaultOmega,
		Dt:            DefaultDt,
		RodLength:     DefaultRodLength,
		Damping:       DefaultDamping,
		Gravity:       DefaultGravity,
		AnimationRate: DefaultAnimationRate,
		Repeat:        true,
		Limits:        Limits{Theta: DefaultThetaLimit, Omega: DefaultOmegaLimit},
		Labels:        true,
		DisplayWidth:  DefaultDisplayWidth,
		DisplayHeight: DefaultDisplayHeight,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the interface-level configuration to the radian-based
// parameters the integrator works with.
func (c *Config) Params() pendulum.Params {
	return pendulum.Params{
		RodLength:  c.RodLength,
		Damping:    c.Damping,
		Gravity:    c.Gravity,
		Dt:         c.Dt,
		TimeLimit:  c.TimeLimit,
		ThetaLimit: c.Limits.Theta * math.Pi / 180,
		OmegaLimit: c.Limits.Omega * math.Pi / 180,
		Repeat:     c.Repeat,
	}
}
