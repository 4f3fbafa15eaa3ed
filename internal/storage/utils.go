package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExportFolderPath names the folder of one export run.
// Format: exports/YYYY/MM/DD/painel-YYYYMMDD-HHMMSS-<first 8 hex of id>
func ExportFolderPath(timestamp time.Time, id uuid.UUID) string {
	ts := timestamp.UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d/painel-%s-%s",
		ts.Year(), ts.Month(), ts.Day(), ts.Format("20060102-150405"), id.String()[:8])
}

// NewExportFolder names a fresh export folder for timestamp
func NewExportFolder(timestamp time.Time) string {
	return ExportFolderPath(timestamp, uuid.New())
}

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".css":  "text/css",
	".md":   "text/markdown",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// GetContentType determines the MIME content type from the file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// CleanPath normalises a slash separated object path and rejects paths
// that climb above the root
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
