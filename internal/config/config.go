package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxTickDuration is the longest simulated step a single world tick may take.
const MaxTickDuration = 0.2

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Simulation holds all configuration for the simulation runner.
type Simulation struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Seed of the world RNG. Zero picks a time-based seed.
	Seed uint64 `yaml:"seed"`

	// Tick loop
	TickInterval   time.Duration `yaml:"tick_interval"`   // wall time between ticks
	MaxDt          float64       `yaml:"max_dt"`          // simulated seconds per world step
	ReportInterval time.Duration `yaml:"report_interval"` // status log period, 0 disables

	World WorldConfig `yaml:"world"`
	Units UnitsConfig `yaml:"units"`
}

// WorldConfig holds grid dimensions and terrain generation parameters.
type WorldConfig struct {
	SizeX int32 `yaml:"size_x"`
	SizeY int32 `yaml:"size_y"`
	SizeZ int32 `yaml:"size_z"`

	TerrainScale  float64 `yaml:"terrain_scale"`  // noise frequency per cube
	TerrainHeight int32   `yaml:"terrain_height"` // highest generated column
}

// UnitsConfig describes the initial population.
type UnitsConfig struct {
	Count           int            `yaml:"count"`
	DefaultBehavior bool           `yaml:"default_behavior"`
	Aggressive      bool           `yaml:"aggressive"` // idle units attack their neighbors
	Attributes      AttributeRange `yaml:"attributes"`
}

// AttributeRange bounds randomly rolled unit attributes (inclusive).
type AttributeRange struct {
	Min int32 `yaml:"min"`
	Max int32 `yaml:"max"`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:       "info",
		TickInterval:   100 * time.Millisecond,
		MaxDt:          MaxTickDuration,
		ReportInterval: 5 * time.Second,
		World: WorldConfig{
			SizeX:         32,
			SizeY:         32,
			SizeZ:         16,
			TerrainScale:  0.08,
			TerrainHeight: 6,
		},
		Units: UnitsConfig{
			Count:           8,
			DefaultBehavior: true,
			Attributes: AttributeRange{
				Min: 25,
				Max: 100,
			},
		},
	}
}

// Validate checks that the config describes a runnable simulation.
func (s Simulation) Validate() error {
	switch {
	case s.TickInterval <= 0:
		return fmt.Errorf("tick_interval %s must be positive: %w", s.TickInterval, ErrInvalidConfig)
	case s.MaxDt <= 0 || s.MaxDt > MaxTickDuration:
		return fmt.Errorf("max_dt %g must be in (0, %g]: %w", s.MaxDt, MaxTickDuration, ErrInvalidConfig)
	case s.ReportInterval < 0:
		return fmt.Errorf("report_interval %s must not be negative: %w", s.ReportInterval, ErrInvalidConfig)
	case s.World.SizeX < 1 || s.World.SizeY < 1 || s.World.SizeZ < 1:
		return fmt.Errorf("world size %dx%dx%d: %w", s.World.SizeX, s.World.SizeY, s.World.SizeZ, ErrInvalidConfig)
	case s.World.TerrainHeight < 0 || s.World.TerrainHeight >= s.World.SizeZ:
		return fmt.Errorf("terrain_height %d must be in [0, size_z): %w", s.World.TerrainHeight, ErrInvalidConfig)
	case s.Units.Count < 0:
		return fmt.Errorf("units.count %d: %w", s.Units.Count, ErrInvalidConfig)
	case s.Units.Attributes.Min < 1 || s.Units.Attributes.Max > 200 ||
		s.Units.Attributes.Min > s.Units.Attributes.Max:
		return fmt.Errorf("units.attributes [%d, %d] must lie in [1, 200]: %w",
			s.Units.Attributes.Min, s.Units.Attributes.Max, ErrInvalidConfig)
	}
	return nil
}

// Load loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
