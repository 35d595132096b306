package testsupport

import (
	"path/filepath"
	"testing"

	"durazubs/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose directories live under a per-test temp
// directory. History is disabled unless WithHistory is passed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Enabled = false
	cfg.History.Path = filepath.Join(base, "state", "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithHistory enables the run journal.
func WithHistory() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Enabled = true
	}
}

// WithStyleProfile selects a style profile.
func WithStyleProfile(profile string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Style.Profile = profile
	}
}

// WithTranslation selects a translation backend and its response file.
func WithTranslation(backend, responseFile string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Translation.Backend = backend
		cfg.Translation.ResponseFile = responseFile
	}
}
