package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newLocal(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "output"))
	if err != nil {
		t.Fatalf("NewLocalStorageClient: %v", err)
	}
	return client
}

func TestNewLocalStorageClientCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	client, err := NewLocalStorageClient(dir)
	if err != nil {
		t.Fatalf("NewLocalStorageClient: %v", err)
	}
	defer client.Close()

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("base directory not created: %v", err)
	}
	if client.BaseDir() != dir {
		t.Errorf("BaseDir = %q", client.BaseDir())
	}
}

func TestLocalStoreAndGet(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)

	if err := client.StoreFile(ctx, "exports/2024/03/01/run/tipo.png", []byte("png")); err != nil {
		t.Fatalf("StoreFile: %v", err)
	}
	data, err := client.GetFile(ctx, "/exports/2024/03/01/run/tipo.png")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("data = %q", data)
	}

	exists, err := client.FileExists(ctx, "exports/2024/03/01/run/tipo.png")
	if err != nil || !exists {
		t.Errorf("FileExists = %v, %v", exists, err)
	}
	exists, err = client.FileExists(ctx, "exports/2024/03/01/run")
	if err != nil || exists {
		t.Errorf("directory reported as file: %v, %v", exists, err)
	}
}

func TestLocalGetMissing(t *testing.T) {
	client := newLocal(t)
	_, err := client.GetFile(context.Background(), "nope.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	exists, err := client.FileExists(context.Background(), "nope.png")
	if err != nil || exists {
		t.Errorf("FileExists = %v, %v", exists, err)
	}
}

func TestLocalRejectsEscapes(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)

	tests := []string{"../secret.txt", "exports/../../secret.txt", "", "/"}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			if err := client.StoreFile(ctx, p, []byte("x")); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("StoreFile(%q) err = %v", p, err)
			}
			if _, err := client.GetFile(ctx, p); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("GetFile(%q) err = %v", p, err)
			}
		})
	}
}

func TestLocalListDir(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)
	for _, p := range []string{"exports/b/timeline.png", "exports/a/tipo.png", "exports/a/preview.html", "other.txt"} {
		if err := client.StoreFile(ctx, p, []byte(p)); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		dir  string
		want []string
	}{
		{"exports/a", []string{"exports/a/preview.html", "exports/a/tipo.png"}},
		{"exports", []string{"exports/a/preview.html", "exports/a/tipo.png", "exports/b/timeline.png"}},
		{"", []string{"exports/a/preview.html", "exports/a/tipo.png", "exports/b/timeline.png", "other.txt"}},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			got, err := client.ListDir(ctx, tt.dir)
			if err != nil {
				t.Fatalf("ListDir: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListDir(%q) = %v, want %v", tt.dir, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ListDir(%q)[%d] = %q, want %q", tt.dir, i, got[i], tt.want[i])
				}
			}
		})
	}
}
