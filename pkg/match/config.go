// Package match implements the Match Controller: loading programs into
// shuffled, minimum-distance memory positions and driving the round-robin
// cycle loop that steps them to completion.
package match

import "fmt"

// Config holds one match's run configuration: plain fields, defaults
// applied by the caller, validated up front rather than per-field as used.
type Config struct {
	MemorySize         int // [256, 65536]
	MaxThreads         int // >= number of programs
	CyclesToCompletion int
	MaxProgramLength   int
	MinProgramDistance int
	Seed               uint64
}

// DefaultConfig returns the standard configuration defaults.
func DefaultConfig() Config {
	return Config{
		MemorySize:         8000,
		MaxThreads:         2000,
		CyclesToCompletion: 80000,
		MaxProgramLength:   100,
		MinProgramDistance: 100,
	}
}

// ConfigError reports a malformed configuration, raised before any
// placement or execution is attempted.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "match: config error: " + e.Message }

// Validate checks cfg's fields against their allowed bounds, given the
// number of programs about to be loaded. nPrograms must be known up front since
// the MaxThreads bound depends on it; distance feasibility is checked later,
// during placement.
func (cfg Config) Validate(nPrograms int) error {
	if cfg.MemorySize < 256 || cfg.MemorySize > 65536 {
		return &ConfigError{Message: fmt.Sprintf("memory_size %d out of [256, 65536]", cfg.MemorySize)}
	}
	if cfg.MaxThreads < nPrograms {
		return &ConfigError{Message: fmt.Sprintf("max_threads %d < %d programs", cfg.MaxThreads, nPrograms)}
	}
	if cfg.CyclesToCompletion <= 0 {
		return &ConfigError{Message: "cycles_to_completion must be > 0"}
	}
	if cfg.MaxProgramLength <= 0 {
		return &ConfigError{Message: "max_program_length must be > 0"}
	}
	if cfg.MinProgramDistance < 0 {
		return &ConfigError{Message: "min_program_distance must be >= 0"}
	}
	return nil
}
