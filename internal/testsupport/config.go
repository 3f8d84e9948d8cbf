package testsupport

import (
	"path/filepath"
	"testing"

	"speechtag/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. Transcription is disabled by default so tests never shell out to
// a recognizer.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "audio")
	cfg.Paths.OutputDir = filepath.Join(base, "metadata")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Transcription.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTranscription enables the external recognizer with the given command.
func WithTranscription(command string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Transcription.Enabled = true
		cfg.Transcription.Command = command
	}
}

// WithWorkers pins the worker pool size.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workflow.Workers = n
	}
}
