package config

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"undamped": {
		Theta: 45, Dt: 0.001, RodLength: 5, Damping: 0, Gravity: 9.8,
		AnimationRate: 2000, TimeLimit: 30, Repeat: true,
		Limits: Limits{Theta: DefaultThetaLimit, Omega: DefaultOmegaLimit},
		Labels: true, DisplayWidth: DefaultDisplayWidth, DisplayHeight: DefaultDisplayHeight,
	},
	"overdamped": {
		Theta: 60, Dt: 0.001, RodLength: 5, Damping: 0.9, Gravity: 9.8,
		AnimationRate: 2000, Repeat: false, Trail: true,
		Limits: Limits{Theta: 0.5, Omega: 0.5},
		Labels: true, DisplayWidth: DefaultDisplayWidth, DisplayHeight: DefaultDisplayHeight,
	},
	"spinning": {
		Theta: 10, Omega: 400, Dt: 0.001, RodLength: 5, Damping: 0.3, Gravity: 9.8,
		AnimationRate: 2000, Repeat: true, Trail: true,
		Limits: Limits{Theta: DefaultThetaLimit, Omega: DefaultOmegaLimit},
		Labels: true, DisplayWidth: DefaultDisplayWidth, DisplayHeight: DefaultDisplayHeight,
	},
	"timed": {
		Theta: 45, Dt: 0.001, RodLength: 5, Damping: 0.3, Gravity: 9.8,
		AnimationRate: 2000, TimeLimit: 10, Plot: true,
		Limits: Limits{Theta: DefaultThetaLimit, Omega: DefaultOmegaLimit},
		Labels: true, DisplayWidth: DefaultDisplayWidth, DisplayHeight: DefaultDisplayHeight,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
