// Package server exposes the dashboard core over HTTP: the feature
// snapshot, the map token, boundary data, the derived state for the
// renderer, and the user-event endpoints the renderer feeds back into.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artsmap/artsmap/internal/session"
)

// TokenResolver obtains the map token from its fallback chain.
type TokenResolver func(ctx context.Context) (string, error)

// Server handles the dashboard API.
type Server struct {
	log          *slog.Logger
	session      *session.Session
	resolveToken TokenResolver
	boundaryPath string
}

// New builds a server around an existing session. A nil logger falls back
// to slog.Default.
func New(log *slog.Logger, sess *session.Session, token TokenResolver, boundaryPath string) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:          log,
		session:      sess,
		resolveToken: token,
		boundaryPath: boundaryPath,
	}
}

// Routes wires the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/api/features", s.handleFeatures)
	r.Get("/api/mapbox-token", s.handleToken)
	r.Get("/api/boundaries", s.handleBoundaries)
	r.Get("/api/state", s.handleState)

	r.Post("/api/filter", s.handleFilter)
	r.Post("/api/select", s.handleSelect)
	r.Post("/api/select/next", s.handleSelectNext)
	r.Delete("/api/select", s.handleDeselect)

	return r
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("dashboard API listening", "addr", addr)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
	return srv.ListenAndServe()
}
