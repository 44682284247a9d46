package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/grape-gamble/internal/grape"
)

// Config holds all server configuration.
type Config struct {
	HTTPAddr      string        `yaml:"http_addr" env:"GRAPE_HTTP_ADDR"`
	GRPCAddr      string        `yaml:"grpc_addr" env:"GRAPE_GRPC_ADDR"`
	PresetDir     string        `yaml:"preset_dir" env:"GRAPE_PRESET_DIR"`
	WatchInterval time.Duration `yaml:"watch_interval" env:"GRAPE_WATCH_INTERVAL"`
	Log           struct {
		Level  string `yaml:"level" env:"GRAPE_LOG_LEVEL"`
		Format string `yaml:"format" env:"GRAPE_LOG_FORMAT"`
	} `yaml:"log"`
	Simulation struct {
		Workers       int `yaml:"workers" env:"GRAPE_WORKERS"`
		DefaultTrials int `yaml:"default_trials" env:"GRAPE_DEFAULT_TRIALS"`
		MaxTrials     int `yaml:"max_trials" env:"GRAPE_MAX_TRIALS"`
		Bins          int `yaml:"histogram_bins" env:"GRAPE_HISTOGRAM_BINS"`
	} `yaml:"simulation"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and fills defaults for anything still unset. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Defaults
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.GRPCAddr == "" {
		cfg.GRPCAddr = ":9090"
	}
	if cfg.PresetDir == "" {
		cfg.PresetDir = "configs"
	}
	if cfg.WatchInterval == 0 {
		cfg.WatchInterval = 2 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Simulation.DefaultTrials == 0 {
		cfg.Simulation.DefaultTrials = grape.DefaultTrialCount
	}
	if cfg.Simulation.MaxTrials == 0 {
		cfg.Simulation.MaxTrials = 100_000
	}
	if cfg.Simulation.Bins == 0 {
		cfg.Simulation.Bins = grape.DefaultBins
	}

	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" && c.GRPCAddr == "" {
		return fmt.Errorf("at least one of http_addr or grpc_addr is required")
	}
	if c.WatchInterval < 0 {
		return fmt.Errorf("watch_interval must not be negative")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must be >= 0 (0 means GOMAXPROCS)")
	}
	if c.Simulation.MaxTrials < 1 || c.Simulation.MaxTrials > grape.MaxTrialCount {
		return fmt.Errorf("simulation.max_trials must be in [1,%d]", grape.MaxTrialCount)
	}
	if c.Simulation.DefaultTrials < 1 || c.Simulation.DefaultTrials > c.Simulation.MaxTrials {
		return fmt.Errorf("simulation.default_trials must be in [1,max_trials]")
	}
	if c.Simulation.Bins < 1 || c.Simulation.Bins > grape.MaxBins {
		return fmt.Errorf("simulation.histogram_bins must be in [1,%d]", grape.MaxBins)
	}
	return nil
}
