package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the panel service and renderer
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8990"`

	// Panel data fixture (JSON or YAML) rendered by /painel
	DataFile string `env:"PANEL_DATA_FILE,default=./data/panel.json"`

	// Artifact storage: "local" or "gcs"
	StorageMode    string `env:"STORAGE_MODE,default=local"`
	LocalOutputDir string `env:"LOCAL_OUTPUT_DIR,default=./output"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Presentation
	Locale      string `env:"PANEL_LOCALE,default=pt-BR"`
	DefaultMode string `env:"DEFAULT_THEME_MODE,default=light"`
	EChartsURL  string `env:"ECHARTS_URL,default=https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"`

	// Timeline entrance animation runs only for 1 < points <= ceiling
	AnimationCeiling int `env:"TIMELINE_ANIMATION_CEILING,default=600"`
	AnimationMillis  int `env:"TIMELINE_ANIMATION_MS,default=5000"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	switch strings.ToLower(c.StorageMode) {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_MODE=gcs")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	switch c.DefaultMode {
	case "light", "dark":
	default:
		return fmt.Errorf("DEFAULT_THEME_MODE must be light or dark, got %q", c.DefaultMode)
	}
	if c.AnimationCeiling < 0 || c.AnimationMillis < 0 {
		return fmt.Errorf("timeline animation settings must not be negative")
	}
	return nil
}
