package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"painel/internal/config"
	"painel/internal/locale"
	"painel/internal/logger"
	"painel/internal/models"
	"painel/internal/page"
	"painel/internal/storage"
)

// DataSource loads the panel fixture for a request
type DataSource func(ctx context.Context) (*models.PanelData, error)

// FileDataSource reloads the fixture at path on every call
func FileDataSource(path string) DataSource {
	return func(ctx context.Context) (*models.PanelData, error) {
		return models.LoadPanelData(path)
	}
}

// Server represents the main application server
type Server struct {
	Config  *config.Config
	Data    DataSource
	Builder *page.Builder
	Storage storage.Client
	Locale  *locale.Formatter
	Log     *logger.Logger

	exportMutex sync.Mutex
	now         func() time.Time
}

// NewServer wires a server from configuration. The storage client is owned
// by the server and released by Close.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		Config:  cfg,
		Data:    FileDataSource(cfg.DataFile),
		Builder: page.NewBuilder(cfg.EChartsURL, cfg.DefaultMode),
		Storage: store,
		Locale:  locale.New(cfg.Locale),
		Log:     logger.Component("server"),
		now:     time.Now,
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/painel", s.HandlePanel).Methods(http.MethodGet)
	r.HandleFunc("/painel/preview", s.HandlePreview).Methods(http.MethodGet)
	r.HandleFunc("/painel/snapshots/{name:[a-z]+}.png", s.HandleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/exports", s.HandleExport).Methods(http.MethodPost)
	r.HandleFunc("/exports", s.HandleListExports).Methods(http.MethodGet)
	r.PathPrefix("/files/").HandlerFunc(s.HandleFile).Methods(http.MethodGet)
	r.Handle("/", http.RedirectHandler("/painel", http.StatusFound)).Methods(http.MethodGet)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log().Debug("request served", logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           s.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log().Info("server listening", logger.Fields{"port": s.Config.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}

func (s *Server) log() *logger.Logger {
	if s.Log == nil {
		return logger.Discard()
	}
	return s.Log
}

func (s *Server) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
