package config

import "sort"

// Presets hold partial configurations merged over the defaults.
var Presets = map[string]*Config{
	"default": {},
	"crowded": {Balls: 40, BallRadius: 8},
	"sparse":  {Balls: 2, BallRadius: 16},
	"frantic": {Balls: 12, VelocityRange: 7, MaxSpeed: 12},
	"marbles": {Balls: 60, BallRadius: 5, VelocityRange: 2},
	"large":   {Width: 1280, Height: 720, Balls: 25, Title: "ballsim"},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Merge(p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
