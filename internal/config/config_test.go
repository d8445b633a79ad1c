package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vesper/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("exists = true for a missing file")
	}
	if resolved == "" {
		t.Fatal("resolved path must be reported")
	}
	if cfg.Publishing.MinHoursBetweenPosts != 4 {
		t.Fatalf("min hours = %v, want default 4", cfg.Publishing.MinHoursBetweenPosts)
	}
	if cfg.Publishing.Platform != "tiktok" {
		t.Fatalf("platform = %q, want tiktok", cfg.Publishing.Platform)
	}
	if cfg.Overlay.Width != 1080 || cfg.Overlay.Height != 1920 {
		t.Fatalf("overlay size = %dx%d, want 1080x1920", cfg.Overlay.Width, cfg.Overlay.Height)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
[paths]
data_dir = "`+filepath.Join(dir, "data")+`"

[publishing]
platform = " TikTok "
min_hours_between_posts = 6.5
hashtags = ["faith", "#prayer", "  "]

[tiktok]
base_url = "https://example.test/v2/"

[logging]
format = "JSON"
`)

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for a present file")
	}
	if cfg.Publishing.Platform != "tiktok" {
		t.Fatalf("platform = %q, want lowercased tiktok", cfg.Publishing.Platform)
	}
	if cfg.Publishing.MinHoursBetweenPosts != 6.5 {
		t.Fatalf("min hours = %v, want 6.5", cfg.Publishing.MinHoursBetweenPosts)
	}
	if len(cfg.Publishing.Hashtags) != 2 || cfg.Publishing.Hashtags[0] != "#faith" {
		t.Fatalf("hashtags = %v, want [#faith #prayer]", cfg.Publishing.Hashtags)
	}
	if strings.HasSuffix(cfg.TikTok.BaseURL, "/") {
		t.Fatalf("base url %q should have no trailing slash", cfg.TikTok.BaseURL)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative interval", "[publishing]\nmin_hours_between_posts = -1\n"},
		{"zero overlay width", "[overlay]\nwidth = -10\nheight = 1920\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestAccessTokenFallsBackToEnv(t *testing.T) {
	t.Setenv("TIKTOK_ACCESS_TOKEN", "env-token")

	path := writeConfig(t, "[tiktok]\n")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TikTok.AccessToken != "env-token" {
		t.Fatalf("access token = %q, want env-token", cfg.TikTok.AccessToken)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}

func TestExpandPathResolvesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded, err := config.ExpandPath("~/videos")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != filepath.Join(home, "videos") {
		t.Fatalf("expanded = %q, want under %q", expanded, home)
	}
}
