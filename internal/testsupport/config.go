package testsupport

import (
	"path/filepath"
	"testing"

	"crate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Report.Path = filepath.Join(base, "imported_tracks.json")
	cfg.Catalog.Enabled = false
	cfg.Catalog.Path = filepath.Join(base, "catalog.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCatalog enables the import-history catalog on the test config.
func WithCatalog() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.Enabled = true
	}
}
