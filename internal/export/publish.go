package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"painel/internal/dataset"
	"painel/internal/logger"
	"painel/internal/storage"
	"painel/internal/theme"
)

// ErrNothingToExport is returned when every dataset is empty.
var ErrNothingToExport = errors.New("export: every dataset is empty")

// Manifest describes one stored export run.
type Manifest struct {
	Folder      string    `json:"folder"`
	GeneratedAt time.Time `json:"generated_at"`
	Mode        string    `json:"mode"`
	Files       []string  `json:"files"`
}

// Publisher renders snapshots and the preview page and stores them in a
// fresh export folder.
type Publisher struct {
	Store    storage.Client
	Renderer Renderer
	Preview  Preview
	Log      *logger.Logger
	Now      func() time.Time
}

// Render produces every artifact for b without storing anything.
func (p *Publisher) Render(b dataset.Bundle, palette theme.Palette) ([]File, error) {
	files, err := p.Renderer.Snapshots(b, palette)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNothingToExport
	}
	var buf bytes.Buffer
	if err := p.Preview.Render(&buf, b, palette); err == nil {
		files = append(files, File{Name: "preview.html", ContentType: "text/html; charset=utf-8", Data: buf.Bytes()})
	} else {
		p.log().Warn("preview page skipped", logger.Fields{"error": err.Error()})
	}
	return files, nil
}

// Publish renders b and stores the artifacts plus a manifest.json.
func (p *Publisher) Publish(ctx context.Context, b dataset.Bundle, palette theme.Palette) (*Manifest, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("export: no storage client")
	}
	files, err := p.Render(b, palette)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	m := &Manifest{
		Folder:      storage.NewExportFolder(now()),
		GeneratedAt: now().UTC(),
		Mode:        string(p.Renderer.Mode),
	}
	for _, f := range files {
		name := path.Join(m.Folder, f.Name)
		if err := p.Store.StoreFile(ctx, name, f.Data); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", f.Name, err)
		}
		m.Files = append(m.Files, name)
	}

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := p.Store.StoreFile(ctx, path.Join(m.Folder, "manifest.json"), raw); err != nil {
		return nil, fmt.Errorf("failed to store manifest: %w", err)
	}

	p.log().Info("export published", logger.Fields{"folder": m.Folder, "files": len(m.Files)})
	return m, nil
}

func (p *Publisher) log() *logger.Logger {
	if p.Log == nil {
		return logger.Discard()
	}
	return p.Log
}
