// Package config provides configuration loading and access for the
// simulation. Defaults are embedded; a user file merges over them.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Input     InputConfig     `yaml:"input"`
	Spatial   SpatialConfig   `yaml:"spatial"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Scene     SceneConfig     `yaml:"scene"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions in pixels. Zero means "use the
// screen dimension".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InputConfig holds input-to-velocity mapping parameters.
type InputConfig struct {
	// Speed is the player's movement in pixels per tick at full input.
	Speed float64 `yaml:"speed"`
}

// SpatialConfig holds broad-phase index parameters.
type SpatialConfig struct {
	// CellSize is the index cell size in pixels.
	CellSize float64 `yaml:"cell_size"`
}

// TelemetryConfig holds motion-stats reporting parameters.
type TelemetryConfig struct {
	// WindowTicks is how many ticks each stats window aggregates.
	WindowTicks int `yaml:"window_ticks"`
}

// SceneConfig describes the entities spawned at startup and on reset.
type SceneConfig struct {
	Entities []SceneEntity `yaml:"entities"`
}

// SceneEntity describes one entity in the scene. Kind is "rect" or
// "segment". Rects use Size; segments use End, relative to Pos.
type SceneEntity struct {
	Kind   string     `yaml:"kind"`
	Pos    [2]float64 `yaml:"pos"`
	Size   [2]float64 `yaml:"size"`
	End    [2]float64 `yaml:"end"`
	Colour [3]float64 `yaml:"colour"`
	Player bool       `yaml:"player"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields
		// present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills values derived from other settings.
func (c *Config) applyDefaults() {
	if c.World.Width == 0 {
		c.World.Width = c.Screen.Width
	}
	if c.World.Height == 0 {
		c.World.Height = c.Screen.Height
	}
	if c.Telemetry.WindowTicks <= 0 {
		c.Telemetry.WindowTicks = 60
	}
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Spatial.CellSize <= 0 {
		return fmt.Errorf("spatial.cell_size must be positive, got %v", c.Spatial.CellSize)
	}
	for i, e := range c.Scene.Entities {
		switch e.Kind {
		case "rect", "segment":
		default:
			return fmt.Errorf("scene.entities[%d]: unknown kind %q", i, e.Kind)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
