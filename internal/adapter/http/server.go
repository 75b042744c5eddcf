// Package http is the request layer: it accepts loosely-typed query
// parameters, validates and converts them into a domain query, and
// serializes the planner's results. The core never sees an unvalidated
// value.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-query-service/internal/domain"
	"github.com/couchcryptid/weather-query-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed welcome.html
var welcomeContent []byte

// QueryExecutor runs a validated query and returns the matching
// observations in date order.
type QueryExecutor interface {
	Execute(q domain.Query) []domain.Observation
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the query endpoint plus health, readiness, and metrics
// routes.
type Server struct {
	httpServer *http.Server
	executor   QueryExecutor
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /, /query, /healthz, /readyz, and
// /metrics routes.
func NewServer(addr string, executor QueryExecutor, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		executor: executor,
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /{$}", s.handleWelcome)
	mux.HandleFunc("GET /query", s.handleQuery)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(welcomeContent) //nolint:errcheck // best-effort static page
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.logger.Info("rejecting invalid query parameters", "error", err)
		s.metrics.HTTPResponses.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	results := s.executor.Execute(q)
	s.logger.Info("handled weather query", "query", q.String(), "results", len(results))
	s.metrics.HTTPResponses.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()

	// An empty result is a valid response, not an error; serialize it as
	// an empty array rather than null.
	if results == nil {
		results = []domain.Observation{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
