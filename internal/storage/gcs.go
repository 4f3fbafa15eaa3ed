package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"painel/internal/logger"
)

// GCSClient stores files in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a GCS client with application default credentials
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads data to the object at path
func (g *GCSClient) StoreFile(ctx context.Context, path string, data []byte) error {
	name, err := CleanPath(path)
	if err != nil {
		return err
	}
	g.log.Debug("storing object", logger.Fields{"bucket": g.bucket, "object": name, "bytes": len(data)})

	writer := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	writer.ContentType = GetContentType(name)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", name, err)
	}
	return nil
}

// GetFile downloads the object at path
func (g *GCSClient) GetFile(ctx context.Context, path string) ([]byte, error) {
	name, err := CleanPath(path)
	if err != nil {
		return nil, err
	}
	reader, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", name, err)
	}
	return data, nil
}

// ListDir lists object names under dir in lexical order
func (g *GCSClient) ListDir(ctx context.Context, dir string) ([]string, error) {
	prefix := ""
	if dir != "" && dir != "/" {
		cleaned, err := CleanPath(dir)
		if err != nil {
			return nil, err
		}
		prefix = strings.TrimSuffix(cleaned, "/") + "/"
	}

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}
	sort.Strings(names)
	return names, nil
}

// FileExists reports whether the object at path exists
func (g *GCSClient) FileExists(ctx context.Context, path string) (bool, error) {
	name, err := CleanPath(path)
	if err != nil {
		return false, err
	}
	_, err = g.client.Bucket(g.bucket).Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", name, err)
	}
	return true, nil
}
