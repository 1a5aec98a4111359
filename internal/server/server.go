package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/workflow"
)

// DefaultMaxUploadBytes bounds a single intent request carrying documents.
const DefaultMaxUploadBytes = 32 << 20

// HealthChecker reports the Scoring Service's health.
type HealthChecker interface {
	Health(ctx context.Context) (*types.HealthStatus, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	controller     *workflow.Controller
	service        HealthChecker
	logger         *slog.Logger
	maxUploadBytes int64
	keepAlive      time.Duration
}

// Config holds server configuration
type Config struct {
	Addr           string
	Controller     *workflow.Controller
	Service        HealthChecker
	Logger         *slog.Logger
	MaxUploadBytes int64
	// KeepAlive is the interval between SSE keep-alive comments.
	KeepAlive time.Duration
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		controller:     cfg.Controller,
		service:        cfg.Service,
		logger:         cfg.Logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		keepAlive:      cfg.KeepAlive,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = DefaultMaxUploadBytes
	}
	if s.keepAlive <= 0 {
		s.keepAlive = 15 * time.Second
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("GET /events", s.handleEvents)

	// Mode and reset
	mux.HandleFunc("POST /mode/toggle", s.handleToggle)
	mux.HandleFunc("POST /reset", s.handleReset)

	// Document selection
	mux.HandleFunc("POST /files/resume", s.handleSelectResume)
	mux.HandleFunc("POST /files/job-description", s.handleSelectJobDescription)
	mux.HandleFunc("POST /files/resumes", s.handleAddResumes)
	mux.HandleFunc("DELETE /files/resumes/{index}", s.handleRemoveResume)
	mux.HandleFunc("POST /drop/{target}", s.handleDrop)

	// Requests to the Scoring Service
	mux.HandleFunc("POST /submit", s.handleSubmit)
	mux.HandleFunc("POST /report", s.handleReport)

	// Create HTTP server. No write timeout: /events streams and /submit
	// waits up to the comparison timeout.
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withLogging(s.withCORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// ListenAndStart listens on the configured address and calls Start.
func (s *Server) ListenAndStart(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Start(ctx, ln)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failureResponse writes an error together with the resulting workflow state
func (s *Server) failureResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), failureBody{
		Error: err.Error(),
		State: s.controller.State().Snapshot(),
	})
}

type failureBody struct {
	Error string            `json:"error"`
	State workflow.Snapshot `json:"state"`
}
