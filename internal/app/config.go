package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string // .hcl model file or directory of them
	OutPath   string // analysis reports land here; empty disables persistence

	ExtracellularCompartment string
	MinNonFiniteUB           float64
	Workers                  int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.MinNonFiniteUB < 0 {
		return nil, errors.New("MinNonFiniteUB must be positive")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("Workers must be at least 1")
	}
	return &cfg, nil
}
