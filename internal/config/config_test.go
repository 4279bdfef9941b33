package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME and the config path at a temp dir and clears env overrides
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BURNBOARD_CONFIG", filepath.Join(home, "config.yaml"))
	for _, key := range []string{
		"BURNBOARD_BACKEND", "BURNBOARD_DATA_DIR", "BURNBOARD_KEY", "BURNBOARD_SQLITE_PATH",
		"BURNBOARD_S3_ENDPOINT", "BURNBOARD_S3_BUCKET", "BURNBOARD_S3_REGION",
		"BURNBOARD_S3_ACCESS_KEY", "BURNBOARD_S3_SECRET_KEY", "BURNBOARD_S3_PREFIX",
		"BURNBOARD_S3_PATH_STYLE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != "file" {
		t.Errorf("expected backend 'file', got %q", cfg.Backend)
	}
	if cfg.Key != "cards" {
		t.Errorf("expected key 'cards', got %q", cfg.Key)
	}
	expectedDir := filepath.Join(home, ".local", "share", "burnboard")
	if cfg.DataDir != expectedDir {
		t.Errorf("expected data dir %q, got %q", expectedDir, cfg.DataDir)
	}
	if cfg.SQLitePath != filepath.Join(expectedDir, "burnboard.db") {
		t.Errorf("unexpected sqlite path %q", cfg.SQLitePath)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
backend: s3
board_name: Team
s3:
  bucket: boards
  endpoint: http://localhost:9000
  use_path_style: true
`), 0644)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "s3" || cfg.BoardName != "Team" {
		t.Errorf("expected file values, got %+v", cfg)
	}
	if cfg.S3.Bucket != "boards" || !cfg.S3.UsePathStyle {
		t.Errorf("expected s3 settings from file, got %+v", cfg.S3)
	}
}

func TestLoad_EnvVar(t *testing.T) {
	home := isolate(t)
	os.WriteFile(filepath.Join(home, "config.yaml"), []byte("backend: s3\n"), 0644)
	t.Setenv("BURNBOARD_BACKEND", "SQLite")
	t.Setenv("BURNBOARD_DATA_DIR", "/tmp/env-data")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("expected env backend to win over file, got %q", cfg.Backend)
	}
	if cfg.DataDir != "/tmp/env-data" {
		t.Errorf("expected /tmp/env-data, got %q", cfg.DataDir)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("BURNBOARD_KEY", "env-key")

	cfg, err := Load(CLIFlags{Key: "cli-key", Backend: "memory"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.Key != "cli-key" {
		t.Errorf("expected cli-key, got %q", cfg.Key)
	}
	if cfg.StorageOptions().Backend != "memory" {
		t.Errorf("expected memory backend, got %q", cfg.StorageOptions().Backend)
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{DataDir: "~/boards"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, "boards")
	if cfg.DataDir != expected {
		t.Errorf("expected %q, got %q", expected, cfg.DataDir)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "file" {
		t.Errorf("expected default backend from written file, got %q", cfg.Backend)
	}
}
