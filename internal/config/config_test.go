package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() returned error for missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.DataDir != "" || cfg.DefaultPython != "" || cfg.UnusedThresholdDays != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `data_dir: /srv/venvs
default_python: "3.12"
unused_threshold_days: 60
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir != "/srv/venvs" {
		t.Errorf("DataDir = %q, want /srv/venvs", cfg.DataDir)
	}
	if cfg.DefaultPython != "3.12" {
		t.Errorf("DefaultPython = %q, want 3.12", cfg.DefaultPython)
	}
	if cfg.UnusedThresholdDays != 60 {
		t.Errorf("UnusedThresholdDays = %d, want 60", cfg.UnusedThresholdDays)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data_dir: [unterminated"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDir_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "venvman") {
		t.Errorf("Dir() = %q", dir)
	}
}

func TestResolveDataDir_Override(t *testing.T) {
	cfg := &Config{DataDir: "/srv/venvs"}
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error: %v", err)
	}
	if dir != "/srv/venvs" {
		t.Errorf("ResolveDataDir() = %q, want /srv/venvs", dir)
	}
}

func TestResolveDataDir_Default(t *testing.T) {
	cfg := &Config{}
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error: %v", err)
	}
	if filepath.Base(dir) != ".venvman" {
		t.Errorf("ResolveDataDir() = %q, want a ~/.venvman path", dir)
	}
}
