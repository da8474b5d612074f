// Package server exposes the extraction pipeline over HTTP: one multipart
// upload endpoint per document kind, plus a health probe.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/idocr/idocr/internal/pipeline"
)

type Server struct {
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	router   *mux.Router
}

func New(logger *slog.Logger, pl *pipeline.Pipeline) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:   logger,
		pipeline: pl,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/extract/image", s.handleExtractImage).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/extract/pdf", s.handleExtractPDF).Methods(http.MethodPost)
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors.Default().Handler(s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("server.write_response_failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
