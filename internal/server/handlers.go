package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"painel/internal/charts"
	"painel/internal/config"
	"painel/internal/dataset"
	"painel/internal/export"
	"painel/internal/logger"
	"painel/internal/models"
	"painel/internal/page"
	"painel/internal/panel"
	"painel/internal/storage"
	"painel/internal/theme"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) panelOptions() panel.Options {
	if s.Config == nil {
		return panel.Options{}
	}
	return panel.Options{
		AnimationCeiling: s.Config.AnimationCeiling,
		AnimationTotal:   time.Duration(s.Config.AnimationMillis) * time.Millisecond,
	}
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"config": "ok", "storage": "ok"}
	if s.Storage == nil {
		checks["storage"] = "disabled"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.clock().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks":    checks,
	})
}

// HandlePanel renders the dashboard for the requested tab and filters. The
// panel controller runs in process so the response already carries the
// chart init scripts, filter options and tab state.
func (s *Server) HandlePanel(w http.ResponseWriter, r *http.Request) {
	data, err := s.Data(r.Context())
	if err != nil {
		s.log().Error("failed to load panel data", err)
		http.Error(w, "Panel data unavailable", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	doc, err := s.Builder.Build(data, page.Request{
		Selection: models.SelectionFromQuery(q),
		MinData:   q.Get("min_data"),
		MaxData:   q.Get("max_data"),
		Turno:     q.Get("turno"),
		Mode:      q.Get("theme"),
	})
	if err != nil {
		s.log().Error("failed to build panel page", err)
		http.Error(w, "Failed to render panel", http.StatusInternalServerError)
		return
	}

	_, err = page.Enhance(doc, page.EnhanceOptions{
		URL:     r.URL.RequestURI(),
		Library: charts.NewECharts(s.log()),
		Locale:  s.Locale,
		Logger:  s.log(),
		Panel:   s.panelOptions(),
	})
	if err != nil {
		s.log().Warn("panel enhancement skipped", logger.Fields{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		s.log().Error("failed to serialise panel page", err)
		http.Error(w, "Failed to render panel", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// bundle loads the fixture as the page would decode it for r
func (s *Server) bundle(r *http.Request) (*models.PanelData, dataset.Bundle, theme.Mode, error) {
	data, err := s.Data(r.Context())
	if err != nil {
		return nil, dataset.Bundle{}, "", err
	}
	b, err := data.Bundle(models.SelectionFromQuery(r.URL.Query()), s.log())
	if err != nil {
		return nil, dataset.Bundle{}, "", err
	}
	return data, b, s.Builder.ModeFor(data, r.URL.Query().Get("theme")), nil
}

// HandlePreview serves the go-echarts preview page
func (s *Server) HandlePreview(w http.ResponseWriter, r *http.Request) {
	data, b, mode, err := s.bundle(r)
	if err != nil {
		s.log().Error("failed to load panel data", err)
		http.Error(w, "Panel data unavailable", http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	preview := export.Preview{Mode: mode, Locale: s.Locale}
	if err := preview.Render(&buf, b, page.Palette(data, b, mode)); err != nil {
		http.Error(w, "Nothing to preview", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// HandleSnapshot serves one PNG snapshot by dataset name
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"] + ".png"
	data, b, mode, err := s.bundle(r)
	if err != nil {
		s.log().Error("failed to load panel data", err)
		http.Error(w, "Panel data unavailable", http.StatusServiceUnavailable)
		return
	}
	files, err := export.NewRenderer(mode, s.Locale).Snapshots(b, page.Palette(data, b, mode))
	if err != nil {
		s.log().Error("failed to render snapshots", err)
		http.Error(w, "Failed to render snapshot", http.StatusInternalServerError)
		return
	}
	for _, f := range files {
		if f.Name == name {
			w.Header().Set("Content-Type", f.ContentType)
			_, _ = w.Write(f.Data)
			return
		}
	}
	http.Error(w, "Snapshot not available", http.StatusNotFound)
}

// HandleExport renders and stores a full export run. Only one export runs
// at a time.
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, "Storage disabled", http.StatusServiceUnavailable)
		return
	}
	if !s.exportMutex.TryLock() {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status": "conflict",
			"error":  "Export already in progress",
		})
		return
	}
	defer s.exportMutex.Unlock()

	data, b, mode, err := s.bundle(r)
	if err != nil {
		s.log().Error("failed to load panel data", err)
		http.Error(w, "Panel data unavailable", http.StatusServiceUnavailable)
		return
	}
	pub := &export.Publisher{
		Store:    s.Storage,
		Renderer: export.NewRenderer(mode, s.Locale),
		Preview:  export.Preview{Mode: mode, Locale: s.Locale},
		Log:      s.log(),
		Now:      s.clock,
	}
	manifest, err := pub.Publish(r.Context(), b, page.Palette(data, b, mode))
	if errors.Is(err, export.ErrNothingToExport) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"status": "empty", "error": err.Error()})
		return
	}
	if err != nil {
		s.log().Error("export failed", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, manifest)
}

// HandleListExports lists stored export manifests, newest first
func (s *Server) HandleListExports(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, "Storage disabled", http.StatusServiceUnavailable)
		return
	}
	files, err := s.Storage.ListDir(r.Context(), "exports")
	if err != nil {
		s.log().Error("failed to list exports", err)
		http.Error(w, "Failed to list exports", http.StatusInternalServerError)
		return
	}
	var manifests []string
	for i := len(files) - 1; i >= 0; i-- {
		if strings.HasSuffix(files[i], "/manifest.json") {
			manifests = append(manifests, "/files/"+files[i])
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"exports": manifests})
}

// HandleFile serves a stored artifact
func (s *Server) HandleFile(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, "Storage disabled", http.StatusServiceUnavailable)
		return
	}
	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	data, err := s.Storage.GetFile(r.Context(), filePath)
	switch {
	case errors.Is(err, storage.ErrInvalidPath):
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "File not found", http.StatusNotFound)
		return
	case err != nil:
		s.log().Error("failed to read stored file", err, logger.Fields{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	_, _ = w.Write(data)
}
