// Package testsupport provides helpers for constructing configs and stores
// rooted in per-test temporary directories.
package testsupport

import (
	"path/filepath"
	"testing"

	"vesper/internal/config"
	"vesper/internal/library"
	"vesper/internal/queue"
)

// NewConfig returns a validated configuration whose directories live under a
// per-test temporary root.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.OverlayDir = filepath.Join(base, "overlays")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.TikTok.AccessToken = "test-token"

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	return &cfg
}

// MustOpenStore opens a queue store against the config's data directory and
// closes it when the test finishes.
func MustOpenStore(t *testing.T, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open queue store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close queue store: %v", err)
		}
	})
	return store
}

// MustOpenLibrary opens a video library against the config's data directory
// and closes it when the test finishes.
func MustOpenLibrary(t *testing.T, cfg *config.Config) *library.Store {
	t.Helper()

	lib, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() {
		if err := lib.Close(); err != nil {
			t.Errorf("close library: %v", err)
		}
	})
	return lib
}
