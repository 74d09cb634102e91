// Package web serves the setup dashboard page and a small JSON API over
// the scoring engine. The engine stays I/O-free; this layer only
// decodes snapshots and renders decisions.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"setuprank/internal/config"
	"setuprank/internal/engine"
	"setuprank/internal/ratelimit"
)

//go:embed static
var staticFiles embed.FS

// Server represents the web server.
type Server struct {
	cfg     *config.Config
	engine  *engine.Engine
	limiter *ratelimit.Limiter
	log     zerolog.Logger
	srv     *http.Server
}

// NewServer creates a new web server around the given engine.
func NewServer(cfg *config.Config, eng *engine.Engine, log zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		engine:  eng,
		limiter: ratelimit.NewLimiter("api", cfg.Server.RatePerMinute),
		log:     log,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() (http.Handler, error) {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/accounts", s.handleAccounts).Methods(http.MethodGet)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static file system: %w", err)
	}
	r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))

	return s.requestLogMiddleware(corsMiddleware(r)), nil
}

// Start starts the web server on the configured port.
func (s *Server) Start() error {
	handler, err := s.Router()
	if err != nil {
		return err
	}

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.log.Info().Int("port", s.cfg.Server.Port).Msg("starting setuprank web UI")

	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// requestLogMiddleware tags each request with an id and logs it.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.log.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// rateLimitMiddleware rejects API calls beyond the configured rate.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
