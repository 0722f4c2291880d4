package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SpecPath string // .hcl file or directory of .hcl files

	// OutDir receives one <name>.json document per assembled workflow.
	// Empty means write every document to the app's output writer.
	OutDir string

	// Command overrides the simulation command for blocks that do not set
	// their own. Empty falls through to the built-in default.
	Command string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SpecPath == "" {
		return nil, errors.New("SpecPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
