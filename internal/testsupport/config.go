package testsupport

import (
	"path/filepath"
	"testing"

	"cutplan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAcceptanceThreshold overrides the alignment acceptance threshold.
func WithAcceptanceThreshold(threshold float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Alignment.AcceptanceThreshold = threshold
	}
}

// WithPreferLaterTake overrides the tie-break take policy.
func WithPreferLaterTake(later bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Alignment.PreferLaterTake = later
	}
}
