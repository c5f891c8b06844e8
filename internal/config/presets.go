package config

import "sort"

// Presets are ready-made run configurations for common teaching
// scenarios. Obstacles come from the obstacle file (or none); presets
// only fix grid size and physics parameters.
var Presets = map[string]*Config{
	"small": {
		Nx: 128, Ny: 128, MaxIters: 1000, ReynoldsDim: 128,
		Density: 0.1, Accel: 0.005, Omega: 1.85,
	},
	"medium": {
		Nx: 256, Ny: 256, MaxIters: 5000, ReynoldsDim: 256,
		Density: 0.1, Accel: 0.005, Omega: 1.85,
	},
	"large": {
		Nx: 1024, Ny: 1024, MaxIters: 20000, ReynoldsDim: 1024,
		Density: 0.1, Accel: 0.005, Omega: 1.85,
	},
	"viscous": {
		Nx: 128, Ny: 128, MaxIters: 2000, ReynoldsDim: 128,
		Density: 0.1, Accel: 0.005, Omega: 0.8,
	},
	"gentle": {
		Nx: 128, Ny: 128, MaxIters: 1000, ReynoldsDim: 128,
		Density: 0.1, Accel: 0.001, Omega: 1.2,
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
