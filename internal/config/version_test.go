package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetVersionFromEnv(t *testing.T) {
	t.Setenv("APP_VERSION", "2.4.1")
	if got := GetVersion(); got != "2.4.1" {
		t.Errorf("GetVersion() = %q", got)
	}
}

func TestVersionFromParentDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "VERSION"), []byte("1.7.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "cmd", "render")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := versionFrom(nested); got != "1.7.0" {
		t.Errorf("versionFrom() = %q, want 1.7.0", got)
	}
}

func TestVersionFallback(t *testing.T) {
	if got := versionFrom(t.TempDir()); got == "" {
		t.Error("versionFrom() returned empty string")
	}
}
