// Package config provides configuration loading and access for the
// simulation shell. The world's update rules themselves are fixed constants
// in the world package; config covers the outer surface only: seeding,
// presentation, telemetry, and the server.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the run configuration.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Population PopulationConfig `yaml:"population"`
	Food       FoodConfig       `yaml:"food"`
	Sim        SimConfig        `yaml:"sim"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Server     ServerConfig     `yaml:"server"`
}

// ScreenConfig holds display settings for the graphical mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	// CellSize is the pixel size of one grid cell.
	CellSize int `yaml:"cell_size"`
}

// PopulationConfig holds the initial seeding parameters.
type PopulationConfig struct {
	// Initial is the number of genesis agents scattered before tick 1.
	Initial int `yaml:"initial"`
}

// FoodConfig holds the food pre-seeding parameters.
type FoodConfig struct {
	// WarmupRounds is how many regeneration passes run before tick 1.
	WarmupRounds int `yaml:"warmup_rounds"`
}

// SimConfig holds stepping cadence settings.
type SimConfig struct {
	// StepsPerUpdate is the number of ticks per frame/update (1-10).
	StepsPerUpdate int `yaml:"steps_per_update"`
	// TickMillis is the tick period for the headless/server loops.
	TickMillis int `yaml:"tick_millis"`
}

// TelemetryConfig holds stats windowing settings.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// ServerConfig holds the live-view websocket server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging it over the embedded
// defaults. If path is empty, only the defaults are used.
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
		// Unmarshal into the same struct: only fields present in the file
		// overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
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
