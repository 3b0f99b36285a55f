package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"assetassist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// WithService overrides the media server convention.
func WithService(service string) ConfigOption {
	return func(cfg *config.Config) { cfg.Service = service }
}

// NewConfig produces a config seeded with unique temp directories per test.
// The process, movies, shows, and collections directories exist; failed and
// backup are left for the runner to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := &config.Config{
		ProcessDir:     makeDir(t, base, "process"),
		MoviesDir:      makeDir(t, base, "movies"),
		ShowsDir:       makeDir(t, base, "shows"),
		CollectionsDir: makeDir(t, base, "collections"),
		FailedDir:      filepath.Join(base, "failed"),
		BackupDir:      filepath.Join(base, "backup"),
		Service:        config.ServiceKometa,
		ImageQuality:   85,
		LogLevel:       "info",
		LogFormat:      "console",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func makeDir(t testing.TB, base, name string) string {
	t.Helper()
	path := filepath.Join(base, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	return path
}
