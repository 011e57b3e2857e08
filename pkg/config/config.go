// Package config defines the evaluation configuration and its validation
// rules.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/banditlab/banditlab/pkg/core"
)

// Config holds the recognized evaluation options.
type Config struct {
	ArmCount       int    // number of arms per generated bandit
	AttemptsPerRun int    // steps each policy takes against its bandit
	NumRuns        int    // independent runs aggregated per evaluation
	Workers        int    // concurrent runs; 1 means fully sequential
	Seed           uint64 // base seed for the per-run random streams
}

// Default returns the default configuration. The seed defaults to zero;
// callers wanting non-reproducible behavior pick one themselves.
func Default() Config {
	return Config{
		ArmCount:       10,
		AttemptsPerRun: 1000,
		NumRuns:        1000,
		Workers:        1,
	}
}

// Validate checks every option against its valid range.
func (c Config) Validate() error {
	if c.ArmCount < 1 {
		return fmt.Errorf("%w: arm count %d must be >= 1", core.ErrInvalidArgument, c.ArmCount)
	}
	if c.AttemptsPerRun < 0 {
		return fmt.Errorf("%w: attempts per run %d must be >= 0", core.ErrInvalidArgument, c.AttemptsPerRun)
	}
	if c.NumRuns < 2 {
		return fmt.Errorf("%w: num runs %d must be >= 2 for a confidence interval", core.ErrInvalidArgument, c.NumRuns)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be >= 1", core.ErrInvalidArgument, c.Workers)
	}
	return nil
}

// ApplyEnv overlays any BANDITLAB_* environment variables onto c. Malformed
// values are reported, not silently skipped.
func ApplyEnv(c *Config) error {
	intVars := []struct {
		name string
		dst  *int
	}{
		{"BANDITLAB_ARMS", &c.ArmCount},
		{"BANDITLAB_ATTEMPTS", &c.AttemptsPerRun},
		{"BANDITLAB_RUNS", &c.NumRuns},
		{"BANDITLAB_WORKERS", &c.Workers},
	}
	for _, v := range intVars {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", core.ErrInvalidArgument, v.name, raw)
		}
		*v.dst = parsed
	}
	if raw := os.Getenv("BANDITLAB_SEED"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: BANDITLAB_SEED=%q is not an unsigned integer", core.ErrInvalidArgument, raw)
		}
		c.Seed = parsed
	}
	return nil
}
