package config

import (
	"context"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.Mongo.Database != "studio_admin" {
		t.Errorf("Mongo.Database = %s", cfg.Mongo.Database)
	}
	if cfg.Layout.SaveDebounce != 5*time.Second {
		t.Errorf("Layout.SaveDebounce = %s, want 5s", cfg.Layout.SaveDebounce)
	}
	if cfg.Backup.Keep != 5 {
		t.Errorf("Backup.Keep = %d, want 5", cfg.Backup.Keep)
	}
	if cfg.Allowlist.Enforce {
		t.Error("allow-list enforcement must default to off")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("ENV", "production")
	t.Setenv("LAYOUT_SAVE_DEBOUNCE", "250ms")
	t.Setenv("ALLOWLIST_ENFORCE", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9001" {
		t.Errorf("Port = %s", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if cfg.Layout.SaveDebounce != 250*time.Millisecond {
		t.Errorf("Layout.SaveDebounce = %s", cfg.Layout.SaveDebounce)
	}
	if !cfg.Allowlist.Enforce {
		t.Error("ALLOWLIST_ENFORCE=true not applied")
	}
}
