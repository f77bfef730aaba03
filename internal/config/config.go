// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and environment.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"fmt"

	"github.com/okian/mentorboard/internal/domain/rubric"
)

// CriterionConfig is one rubric criterion as configured at boot.
type CriterionConfig struct {
	ID     string  `koanf:"id"`
	Name   string  `koanf:"name"`
	Weight float64 `koanf:"weight"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// StoreTimeoutMS bounds every persistent-store operation. A hung call
	// fails and rolls back exactly like an explicit error.
	StoreTimeoutMS int `koanf:"store_timeout_ms"`

	// DraftDebounceMS is the quiescence window before a draft write.
	DraftDebounceMS int `koanf:"draft_debounce_ms"`

	// DraftTTLHours is the draft retention window.
	DraftTTLHours int `koanf:"draft_ttl_hours"`

	// DraftPath enables draft persistence across restarts when non-empty.
	DraftPath string `koanf:"draft_path"`

	// Criteria overrides the default scoring rubric. The set is fixed for
	// the lifetime of the process.
	Criteria []CriterionConfig `koanf:"criteria"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		StoreTimeoutMS:  15_000,
		DraftDebounceMS: 1_000,
		DraftTTLHours:   24,
	}
}

// Rubric builds the scoring rubric from configuration, falling back to the
// built-in default when no criteria are configured.
func (c *Config) Rubric() (*rubric.Rubric, error) {
	if len(c.Criteria) == 0 {
		return rubric.Default(), nil
	}
	criteria := make([]rubric.Criterion, len(c.Criteria))
	for i, cc := range c.Criteria {
		criteria[i] = rubric.Criterion{ID: cc.ID, Name: cc.Name, Weight: cc.Weight}
	}
	rb, err := rubric.New(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return rb, nil
}
