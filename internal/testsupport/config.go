// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs, queue stores with registered cleanup, and file fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"subweave/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InboxDir = filepath.Join(base, "inbox")
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.DeliverDir = filepath.Join(base, "deliver")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Transcriber.CacheDir = filepath.Join(base, "cache")
	cfg.Translator.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTranslatorDisabled turns off the translation stage on the test config.
func WithTranslatorDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Translator.Enabled = false
	}
}

// WithTargets overrides the translation target languages.
func WithTargets(targets ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Languages.Targets = targets
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InboxDir)
}
