package config

import (
	"sort"

	"github.com/san-kum/horizon/internal/horizon"
)

var presets = map[string]func() *Config{
	"default": DefaultConfig,

	"orbit": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.EnableGravity = true
		cfg.Physics.TimeStep = 60
		cfg.Physics.IntegrationMethod = "fourth-order"
		cfg.Duration = 70000
		cfg.Bodies = []BodyConfig{
			{Name: "Inner", Kind: "planet", Position: []float64{4e11, 0, 0}, Mass: 5.972e24, Radius: 6.4e6, CircularOrbit: true},
			{Name: "Middle", Kind: "planet", Position: []float64{0, 0, 6e11}, Mass: 1.898e27, Radius: 7e7, CircularOrbit: true},
			{Name: "Outer", Kind: "star", Position: []float64{-8e11, 0, 0}, Mass: horizon.SolarMass, Radius: 7e8, CircularOrbit: true},
		}
		return cfg
	},

	"binary": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.EnableGravity = true
		cfg.Physics.TimeStep = 60
		cfg.Physics.IntegrationMethod = "leapfrog"
		cfg.Duration = 70000
		cfg.Bodies = []BodyConfig{
			{Name: "Primary", Kind: "star", Position: []float64{5e11, 0, 0}, Mass: 10 * horizon.SolarMass, Radius: 7e9, CircularOrbit: true},
			{Name: "Secondary", Kind: "star", Position: []float64{-5e11, 0, 0}, Mass: 10 * horizon.SolarMass, Radius: 7e9, CircularOrbit: true},
		}
		return cfg
	},

	"plunge": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.EnableGravity = true
		cfg.Physics.TimeStep = 5
		cfg.Physics.IntegrationMethod = "first-order"
		cfg.Duration = 15000
		cfg.Bodies = []BodyConfig{
			{Name: "Infaller", Kind: "asteroid", Position: []float64{4e11, 0, 0}, Mass: 1e20, Radius: 1e5},
			{Name: "Observer", Kind: "test-mass", Position: []float64{0, 0, 8e11}, Mass: 0, Radius: 1, CircularOrbit: true},
		}
		return cfg
	},

	"collision": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.EnableGravity = true
		cfg.Physics.TimeStep = 60
		cfg.Physics.IntegrationMethod = "fourth-order"
		cfg.Duration = 20000
		cfg.Bodies = []BodyConfig{
			{Name: "Heavy", Kind: "star", Position: []float64{4e11, 0, 0}, Velocity: []float64{0, 0, 3e6}, Mass: horizon.SolarMass, Radius: 4e10},
			{Name: "Light", Kind: "planet", Position: []float64{4e11, 0, 1e11}, Velocity: []float64{0, 0, -3e6}, Mass: 5.972e24, Radius: 4e10},
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
