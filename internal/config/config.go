package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/latticeflow/internal/lattice"
)

const (
	DefaultNx          = 128
	DefaultNy          = 128
	DefaultMaxIters    = 1000
	DefaultReynoldsDim = 128
	DefaultDensity     = 0.1
	DefaultAccel       = 0.005
	DefaultOmega       = 1.85
)

// Config is the YAML run configuration. The classic two-file invocation
// bypasses it entirely; subcommands use it with CLI-flag override.
type Config struct {
	Nx           int     `yaml:"nx"`
	Ny           int     `yaml:"ny"`
	MaxIters     int     `yaml:"max_iters"`
	ReynoldsDim  int     `yaml:"reynolds_dim"`
	Density      float64 `yaml:"density"`
	Accel        float64 `yaml:"accel"`
	Omega        float64 `yaml:"omega"`
	Threads      int     `yaml:"threads"`
	ObstacleFile string  `yaml:"obstacle_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Nx:          DefaultNx,
		Ny:          DefaultNy,
		MaxIters:    DefaultMaxIters,
		ReynoldsDim: DefaultReynoldsDim,
		Density:     DefaultDensity,
		Accel:       DefaultAccel,
		Omega:       DefaultOmega,
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

// Params converts the configuration to validated-later physics params.
func (c *Config) Params() lattice.Params {
	return lattice.Params{
		Nx:          c.Nx,
		Ny:          c.Ny,
		MaxIters:    c.MaxIters,
		ReynoldsDim: c.ReynoldsDim,
		Density:     c.Density,
		Accel:       c.Accel,
		Omega:       c.Omega,
	}
}
