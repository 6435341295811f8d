package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravlab/internal/sim"
	"github.com/san-kum/gravlab/internal/universe"
)

const (
	DefaultDt       = 0.005
	DefaultDuration = 10.0
	DefaultSample   = 10
	DefaultBodies   = 2500
	DefaultG        = 1.0e2
)

// Config is the on-disk run description. Flags override whatever a file
// or preset provides; the config package performs no validation beyond
// yaml decoding — keeping ranges sane is the caller's contract.
type Config struct {
	Dt       float64          `yaml:"dt"`
	Duration float64          `yaml:"duration"`
	Sample   int              `yaml:"sample"`
	Universe UniverseConfig   `yaml:"universe"`
	Genesis  GenerationConfig `yaml:"generation"`
}

type UniverseConfig struct {
	G          float64 `yaml:"gravitational_constant"`
	Collisions bool    `yaml:"enable_collisions"`
}

type GenerationConfig struct {
	Seed        int64   `yaml:"seed"`
	Bodies      int     `yaml:"bodies"`
	PositionMin float64 `yaml:"position_min"`
	PositionMax float64 `yaml:"position_max"`
	VelocityMin float64 `yaml:"velocity_min"`
	VelocityMax float64 `yaml:"velocity_max"`
	MassMin     float64 `yaml:"mass_min"`
	MassMax     float64 `yaml:"mass_max"`
	Tangential  bool    `yaml:"tangential_velocity"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Sample:   DefaultSample,
		Universe: UniverseConfig{
			G:          DefaultG,
			Collisions: true,
		},
		Genesis: GenerationConfig{
			Bodies:      DefaultBodies,
			PositionMax: 250.0,
			VelocityMax: 125.0,
			MassMin:     1.0,
			MassMax:     10.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) GenerationSettings() universe.GenerationSettings {
	return universe.GenerationSettings{
		Seed:               c.Genesis.Seed,
		Bodies:             c.Genesis.Bodies,
		PositionRange:      universe.Range{Min: c.Genesis.PositionMin, Max: c.Genesis.PositionMax},
		VelocityRange:      universe.Range{Min: c.Genesis.VelocityMin, Max: c.Genesis.VelocityMax},
		MassRange:          universe.Range{Min: c.Genesis.MassMin, Max: c.Genesis.MassMax},
		TangentialVelocity: c.Genesis.Tangential,
	}
}

func (c *Config) SimulationSettings() universe.SimulationSettings {
	return universe.SimulationSettings{
		GravitationalConstant: c.Universe.G,
		EnableCollisions:      c.Universe.Collisions,
	}
}

func (c *Config) RunConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration, Sample: c.Sample}
}
