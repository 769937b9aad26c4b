package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldline/triage/internal/classifier"
	"github.com/fieldline/triage/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRIAGE_DB_NAME", "triage")
	t.Setenv("TRIAGE_DB_USER", "svc")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"shutdown_timeout", cfg.ShutdownTimeout, "30s"},
		{"version", cfg.Version, "0.1.0"},
		{"server addr", cfg.Server.Addr(), "0.0.0.0:8080"},
		{"api base path", cfg.API.BasePath, "/api"},
		{"classifier mode", cfg.Classifier.Mode, classifier.ModeZeroShot},
		{"classifier timeout", cfg.Classifier.Timeout, "30s"},
		{"pagination default", cfg.API.Pagination.DefaultSize, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadBaseConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
version = "1.2.3"

[server]
port = 9090

[database]
name = "filedb"
user = "fileuser"

[classifier]
mode = "open_ai"

[classifier.open_ai]
api_key = "test-key"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("version = %q", cfg.Version)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Classifier.Mode != classifier.ModeOpenAI {
		t.Errorf("mode = %q", cfg.Classifier.Mode)
	}
	if cfg.Classifier.OpenAI.APIKey != "test-key" {
		t.Errorf("api_key = %q", cfg.Classifier.OpenAI.APIKey)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	base := `
[database]
name = "basedb"
user = "baseuser"

[server]
port = 8080
`
	overlay := `
[server]
port = 9999
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(base), 0o644); err != nil {
		t.Fatalf("write base: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.test.toml"), []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	chdir(t, dir)
	t.Setenv("TRIAGE_ENV", "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, overlay not applied", cfg.Server.Port)
	}
	if cfg.Database.Name != "basedb" {
		t.Errorf("name = %q, base value lost", cfg.Database.Name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRIAGE_DB_NAME", "envdb")
	t.Setenv("TRIAGE_DB_USER", "envuser")
	t.Setenv("TRIAGE_SHUTDOWN_TIMEOUT", "45s")
	t.Setenv("TRIAGE_CLASSIFIER_MODE", "fine_tuned_bart")
	t.Setenv("TRIAGE_SERVER_PORT", "7070")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "45s" {
		t.Errorf("shutdown_timeout = %q", cfg.ShutdownTimeout)
	}
	if cfg.Classifier.Mode != classifier.ModeFineTuned {
		t.Errorf("mode = %q", cfg.Classifier.Mode)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalidClassifierMode(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRIAGE_DB_NAME", "db")
	t.Setenv("TRIAGE_DB_USER", "u")
	t.Setenv("TRIAGE_CLASSIFIER_MODE", "gpt_4o")

	if _, err := config.Load(); err == nil {
		t.Error("load accepted unknown classifier mode")
	}
}
