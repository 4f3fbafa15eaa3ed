package storage

import (
	"context"
	"fmt"
	"strings"

	"painel/internal/config"
)

// Mode selects the storage backend
type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCS   Mode = "gcs"
)

// NewStorageClient creates the client named by cfg.StorageMode
func NewStorageClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch Mode(strings.ToLower(cfg.StorageMode)) {
	case ModeLocal:
		client, err := NewLocalStorageClient(cfg.LocalOutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return client, nil

	case ModeGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("gcs storage needs a bucket")
		}
		client, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.StorageMode)
	}
}
