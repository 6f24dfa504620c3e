// Package config loads hexfield settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	StageDir        string  `env:"HEXFIELD_STAGE_DIR" envDefault:"stages"`
	SavePath        string  `env:"HEXFIELD_SAVE_PATH" envDefault:"saves/save.yaml"`
	ProgressBackend string  `env:"HEXFIELD_PROGRESS_BACKEND" envDefault:"file"`
	TotalStages     int     `env:"HEXFIELD_TOTAL_STAGES" envDefault:"37"`
	HexSize         float64 `env:"HEXFIELD_HEX_SIZE" envDefault:"28"`
	LogLevel        string  `env:"HEXFIELD_LOG_LEVEL" envDefault:"info"`
	Color           bool    `env:"HEXFIELD_COLOR" envDefault:"true"`

	// Directory where final snapshots of played boards are written
	SavedSnapshotsDir string `env:"HEXFIELD_SNAPSHOT_DIR"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.ProgressBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown progress backend %q (expected %s or %s)", cfg.ProgressBackend, BackendFile, BackendSQLite)
	}
	if cfg.TotalStages < 1 {
		return fmt.Errorf("total stages must be positive, got %d", cfg.TotalStages)
	}
	if cfg.HexSize <= 0 {
		return fmt.Errorf("hex size must be positive, got %v", cfg.HexSize)
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

func (cfg Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
