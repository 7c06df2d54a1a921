package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_NoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Profiles) != 0 {
		t.Fatalf("expected no profiles, got %v", cfg.Profiles)
	}
	if cfg.Period != "" {
		t.Fatalf("expected empty period, got %q", cfg.Period)
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	content := `profiles:
  - production
  - staging
period: week
tags:
  - "team=data"
  - "env=prod"
source: executions
format: plain
timeout: 2m
`
	if err := os.WriteFile(filepath.Join(dir, ".stepview.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Profiles) != 2 || cfg.Profiles[0] != "production" {
		t.Fatalf("unexpected profiles: %v", cfg.Profiles)
	}
	if cfg.Period != "week" {
		t.Fatalf("expected period week, got %q", cfg.Period)
	}
	if len(cfg.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(cfg.Tags))
	}
	if cfg.Source != "executions" {
		t.Fatalf("expected source executions, got %q", cfg.Source)
	}
	if cfg.TimeoutDuration() != 2*time.Minute {
		t.Fatalf("expected 2m timeout, got %v", cfg.TimeoutDuration())
	}
}

func TestLoad_YMLFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".stepview.yml"), []byte("period: hour\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Period != "hour" {
		t.Fatalf("expected period hour, got %q", cfg.Period)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".stepview.yaml"), []byte("period: [unclosed"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTimeoutDuration_Empty(t *testing.T) {
	if d := (Config{}).TimeoutDuration(); d != 0 {
		t.Fatalf("expected zero duration, got %v", d)
	}
}
