package config

import (
	"context"
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_MODE", "GCS_BUCKET", "PANEL_LOCALE", "DEFAULT_THEME_MODE",
		"TIMELINE_ANIMATION_CEILING", "TIMELINE_ANIMATION_MS", "LOG_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8990" {
		t.Errorf("Port = %q, want 8990", cfg.Port)
	}
	if cfg.StorageMode != "local" {
		t.Errorf("StorageMode = %q", cfg.StorageMode)
	}
	if cfg.Locale != "pt-BR" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.AnimationCeiling != 600 || cfg.AnimationMillis != 5000 {
		t.Errorf("animation = %d/%d", cfg.AnimationCeiling, cfg.AnimationMillis)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("STORAGE_MODE", "gcs")
	t.Setenv("GCS_BUCKET", "painel-artifacts")
	t.Setenv("DEFAULT_THEME_MODE", "dark")
	t.Setenv("TIMELINE_ANIMATION_CEILING", "120")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9100" || cfg.GCSBucket != "painel-artifacts" || cfg.DefaultMode != "dark" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.AnimationCeiling != 120 {
		t.Errorf("AnimationCeiling = %d", cfg.AnimationCeiling)
	}
}

func TestValidate(t *testing.T) {
	base := Config{StorageMode: "local", DefaultMode: "light", AnimationCeiling: 600, AnimationMillis: 5000}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid local", func(*Config) {}, false},
		{"gcs without bucket", func(c *Config) { c.StorageMode = "gcs" }, true},
		{"gcs with bucket", func(c *Config) { c.StorageMode = "gcs"; c.GCSBucket = "b" }, false},
		{"unknown storage", func(c *Config) { c.StorageMode = "s3" }, true},
		{"bad mode", func(c *Config) { c.DefaultMode = "sepia" }, true},
		{"negative ceiling", func(c *Config) { c.AnimationCeiling = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
