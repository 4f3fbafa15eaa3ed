package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"painel/internal/config"
)

func TestNewStorageClient(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")

	client, err := NewStorageClient(ctx, &config.Config{StorageMode: "LOCAL", LocalOutputDir: dir})
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	defer client.Close()
	local, ok := client.(*LocalStorageClient)
	if !ok || local.BaseDir() != dir {
		t.Errorf("client = %#v", client)
	}

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"gcs without bucket", config.Config{StorageMode: "gcs"}, "needs a bucket"},
		{"unknown mode", config.Config{StorageMode: "s3"}, "unsupported storage mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStorageClient(ctx, &tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
