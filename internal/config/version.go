package config

import (
	"os"
	"path/filepath"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns APP_VERSION when set (CI builds), otherwise the first
// VERSION file found walking up from the working directory.
func GetVersion() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	dir, err := os.Getwd()
	if err != nil {
		return fallbackVersion
	}
	return versionFrom(dir)
}

func versionFrom(dir string) string {
	for i := 0; i < 4; i++ {
		if content, err := os.ReadFile(filepath.Join(dir, "VERSION")); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return fallbackVersion
}
