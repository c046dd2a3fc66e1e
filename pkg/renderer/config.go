package renderer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// DefaultWidth is the buffer width used when a scene is loaded
const DefaultWidth = 256

// Config is the full render configuration: the tracer's optical settings plus
// the sampling and scheduling settings of the driver.
type Config struct {
	tracer.Config

	AntialiasGrid int   `json:"antialiasGrid"` // N>0 takes (N+1)² samples per pixel
	Jitter        bool  `json:"jitter"`        // One randomly offset sample per pixel; overrides the grid
	Workers       int   `json:"workers"`       // Render goroutines, 0 means one per CPU
	Seed          int64 `json:"seed"`          // Jitter seed
}

// DefaultConfig returns the classic defaults: one centered sample, no recursion
func DefaultConfig() Config {
	return Config{
		Config: tracer.DefaultConfig(),
		Seed:   42,
	}
}

// LoadConfig reads a JSON file on top of DefaultConfig. Keys left out keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate rejects settings the driver cannot honour
func (c Config) Validate() error {
	switch {
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.AntialiasGrid < 0:
		return fmt.Errorf("%w: antialias grid %d is negative", ErrInvalidConfig, c.AntialiasGrid)
	case c.RecursionCeiling < 0:
		return fmt.Errorf("%w: recursion ceiling %d is negative", ErrInvalidConfig, c.RecursionCeiling)
	case c.Workers < 0:
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidConfig, c.Workers)
	case c.AmbientLight < 0:
		return fmt.Errorf("%w: ambient light %f is negative", ErrInvalidConfig, c.AmbientLight)
	}

	a := c.Attenuation
	if a.Constant < 0 || a.Linear < 0 || a.Quadratic < 0 {
		return fmt.Errorf("%w: attenuation coefficients must be non-negative", ErrInvalidConfig)
	}
	if a.Constant+a.Linear+a.Quadratic <= 0 {
		return fmt.Errorf("%w: attenuation coefficients must not all be zero", ErrInvalidConfig)
	}
	return nil
}

// SamplesPerPixel returns the number of primary rays traced per pixel
func (c Config) SamplesPerPixel() int {
	if c.Jitter || c.AntialiasGrid <= 0 {
		return 1
	}
	return (c.AntialiasGrid + 1) * (c.AntialiasGrid + 1)
}
