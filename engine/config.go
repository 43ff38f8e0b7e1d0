package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the simulator's run policy. Generalized from the teacher's
// per-instruction-class latency table (timing/latency.TimingConfig) to this
// simulator's policy knobs: this model has no configurable latencies (the
// ALU is fixed at 2 stages, a Non-goal to change), but it does have a
// configurable safety bound and dispatch/issue/retire widths.
type Config struct {
	// CycleCap safety-bounds a runaway simulation (spec §6).
	CycleCap uint64 `json:"cycle_cap"`

	// MaxPerCycleWidth bounds fetch, dispatch, issue, retire and
	// rollback per cycle (spec §3/§8). Changing it away from the
	// spec-mandated 4 is intentionally supported only for experimentation
	// in tests; the CLI always runs with the default.
	MaxPerCycleWidth int `json:"max_per_cycle_width"`
}

// DefaultCycleCap is the safety bound spec §6 suggests (10^6 cycles).
const DefaultCycleCap = 1_000_000

// DefaultConfig returns the spec-mandated run policy.
func DefaultConfig() *Config {
	return &Config{
		CycleCap:        DefaultCycleCap,
		MaxPerCycleWidth: 4,
	}
}

// LoadConfig loads a Config from a JSON file, following the teacher's
// read-file/unmarshal/wrap-error pattern (timing/latency.LoadConfig).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return config, nil
}

// Validate checks that the config describes a runnable simulation.
func (c *Config) Validate() error {
	if c.CycleCap == 0 {
		return fmt.Errorf("cycle_cap must be > 0")
	}
	if c.MaxPerCycleWidth <= 0 {
		return fmt.Errorf("max_per_cycle_width must be > 0")
	}
	return nil
}
