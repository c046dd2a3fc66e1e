package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxDepth != 0 {
		t.Errorf("Expected max depth 0, got %d", config.MaxDepth)
	}
	if config.AmbientLight != 0.2 {
		t.Errorf("Expected ambient light 0.2, got %v", config.AmbientLight)
	}
	if config.RecursionCeiling != tracer.DefaultRecursionCeiling {
		t.Errorf("Expected ceiling %d, got %d", tracer.DefaultRecursionCeiling, config.RecursionCeiling)
	}
	if config.Jitter || config.AntialiasGrid != 0 {
		t.Error("Expected a single centered sample by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"negative grid", func(c *Config) { c.AntialiasGrid = -2 }},
		{"negative ceiling", func(c *Config) { c.RecursionCeiling = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative ambient", func(c *Config) { c.AmbientLight = -0.1 }},
		{"negative attenuation", func(c *Config) { c.Attenuation.Linear = -1 }},
		{"zero attenuation", func(c *Config) {
			c.Attenuation.Constant, c.Attenuation.Linear, c.Attenuation.Quadratic = 0, 0, 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSamplesPerPixel(t *testing.T) {
	tests := []struct {
		grid     int
		jitter   bool
		expected int
	}{
		{0, false, 1},
		{1, false, 4},
		{3, false, 16},
		{3, true, 1},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.AntialiasGrid = tt.grid
		config.Jitter = tt.jitter
		if got := config.SamplesPerPixel(); got != tt.expected {
			t.Errorf("Grid %d jitter %v: expected %d, got %d", tt.grid, tt.jitter, tt.expected, got)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "render.json")
	data := `{"maxDepth": 4, "fresnel": true, "antialiasGrid": 2, "attenuation": {"constant": 1}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.MaxDepth != 4 || !config.Fresnel || config.AntialiasGrid != 2 {
		t.Errorf("Expected overrides to apply, got %+v", config)
	}
	// Keys left out keep their defaults
	if config.AmbientLight != 0.2 || config.Seed != 42 {
		t.Errorf("Expected defaults to survive, got ambient %v seed %d", config.AmbientLight, config.Seed)
	}
	if config.Attenuation.Constant != 1 || config.Attenuation.Linear != 0.25 {
		t.Errorf("Expected partial attenuation override, got %+v", config.Attenuation)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"maxDepth": -3}`), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	malformed := filepath.Join(dir, "malformed.json")
	if err := os.WriteFile(malformed, []byte(`{"maxDepth": `), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(malformed); err == nil {
		t.Error("Expected error for malformed config")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing config")
	}
}
