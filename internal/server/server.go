// internal/server/server.go
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nizzatkr/pero/internal/control"
	"github.com/nizzatkr/pero/internal/publish"
	"github.com/nizzatkr/pero/internal/stream"
	"github.com/nizzatkr/pero/internal/telemetry"
)

// Server is the HTTP surface the dashboard talks to. The dashboard
// itself (page, map widget, video element) lives elsewhere; this is
// the narrow interface between it and the core.
type Server struct {
	classifier   *control.Classifier
	publisher    *publish.Publisher
	monitor      *stream.Monitor
	poller       *telemetry.Poller // nil when telemetry is disabled
	store        *telemetry.Store  // nil when history is disabled
	historyLimit int
	logger       *slog.Logger
}

// Config collects the server's collaborators.
type Config struct {
	Classifier   *control.Classifier
	Publisher    *publish.Publisher
	Monitor      *stream.Monitor
	Poller       *telemetry.Poller
	Store        *telemetry.Store
	HistoryLimit int
	Logger       *slog.Logger
}

// New creates the server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 100
	}
	return &Server{
		classifier:   cfg.Classifier,
		publisher:    cfg.Publisher,
		monitor:      cfg.Monitor,
		poller:       cfg.Poller,
		store:        cfg.Store,
		historyLimit: limit,
		logger:       logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/control", s.handleControl)

		r.Get("/stream", s.handleStream)
		r.Post("/stream/refresh", s.handleStreamRefresh)
		r.Post("/stream/visible", s.handleStreamVisible)
		r.Post("/stream/render-error", s.handleRenderError)

		r.Get("/telemetry", s.handleTelemetry)
		r.Get("/telemetry/history", s.handleHistory)
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}
