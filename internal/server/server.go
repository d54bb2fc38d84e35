// Package server exposes the puzzle catalog and the solvers over a small
// read-only JSON API.
//
// Routes:
//
//	GET /api/puzzles                                  catalog listing
//	GET /api/explain?puzzle=&divisors=3,5&bound=1000  full explanation
//	GET /api/solve?puzzle=&divisors=&bound=&solver=   solver comparison
//	GET /health                                       liveness and memory
//	GET /metrics                                      Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/logging"
	"github.com/agbru/puzzlebook/internal/metrics"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Server is the HTTP API server.
type Server struct {
	httpServer      *http.Server
	catalog         *puzzle.Catalog
	factory         puzzle.SolverFactory
	opts            puzzle.Options
	security        SecurityConfig
	metrics         *Metrics
	logger          logging.Logger
	version         string
	startTime       time.Time
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and lifecycle logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces the default security settings.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// WithPuzzleOptions sets the solver limits used by every request.
func WithPuzzleOptions(o puzzle.Options) Option {
	return func(s *Server) { s.opts = o }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithShutdownTimeout sets how long Start waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New creates a server listening on addr.
func New(addr string, catalog *puzzle.Catalog, factory puzzle.SolverFactory, opts ...Option) *Server {
	s := &Server{
		catalog:         catalog,
		factory:         factory,
		opts:            puzzle.DefaultOptions(),
		security:        DefaultSecurityConfig(),
		metrics:         NewMetrics(),
		logger:          logging.NewLogger(io.Discard, "server"),
		version:         "dev",
		startTime:       time.Now(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.security.RequestTimeout <= 0 {
		s.security.RequestTimeout = DefaultSecurityConfig().RequestTimeout
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.security.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/puzzles", s.wrap(s.handlePuzzles))
	mux.HandleFunc("/api/explain", s.wrap(s.handleExplain))
	mux.HandleFunc("/api/solve", s.wrap(s.handleSolve))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	mux.HandleFunc("/", s.wrap(s.handleNotFound))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return s.requestIDMiddleware(
		s.loggingMiddleware(
			s.metricsMiddleware(
				s.tracingMiddleware(
					SecurityMiddleware(s.security, h)))))
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// PuzzleInfo describes one catalog entry in /api/puzzles.
type PuzzleInfo struct {
	Number   int           `json:"number"`
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Defaults puzzle.Params `json:"defaults"`
}

// SolverResult is one solver's outcome in /api/solve.
type SolverResult struct {
	Solver     string   `json:"solver"`
	Name       string   `json:"name"`
	Answer     *big.Int `json:"answer,omitempty"`
	DurationNs int64    `json:"durationNs"`
	Error      string   `json:"error,omitempty"`
}

// SolveResponse is the body of /api/solve.
type SolveResponse struct {
	Puzzle     string         `json:"puzzle"`
	Params     puzzle.Params  `json:"params"`
	Answer     *big.Int       `json:"answer,omitempty"`
	Consistent bool           `json:"consistent"`
	Results    []SolverResult `json:"results"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime"`
	Memory  metrics.MemorySnapshot `json:"memory"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	puzzles := s.catalog.List()
	infos := make([]PuzzleInfo, len(puzzles))
	for i, p := range puzzles {
		defaults := p.Defaults()
		infos[i] = PuzzleInfo{Number: i + 1, Key: p.Key(), Title: p.Title(defaults), Defaults: defaults}
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	p, params, err := s.parsePuzzleQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.security.RequestTimeout)
	defer cancel()
	e, err := p.Explain(ctx, params, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	p, params, err := s.parsePuzzleQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	selection := r.URL.Query().Get("solver")
	if selection == "" {
		selection = orchestration.AllSolvers
	}
	solvers := orchestration.GetSolversToRun(selection, s.factory)
	if len(solvers) == 0 {
		hint := ""
		if guess := puzzle.Suggest(selection, s.factory.List()); guess != "" {
			hint = fmt.Sprintf(" (did you mean %q?)", guess)
		}
		s.writeError(w, r, apperrors.NewConfigError("unknown solver %q%s", selection, hint))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.security.RequestTimeout)
	defer cancel()
	results := orchestration.ExecuteSolvers(ctx, solvers, params, s.opts, orchestration.NullProgressReporter{}, io.Discard)
	summary := orchestration.Summarize(results)

	resp := SolveResponse{
		Puzzle:     p.Key(),
		Params:     params,
		Consistent: summary.Successes > 0 && !summary.Mismatch,
		Results:    make([]SolverResult, len(results)),
	}
	for i, res := range results {
		out := SolverResult{Solver: res.Key, Name: res.Name, DurationNs: res.Duration.Nanoseconds()}
		if res.Err != nil {
			out.Error = res.Err.Error()
		} else {
			out.Answer = res.Answer
			s.metrics.ObserveSolve(res.Key, res.Duration)
		}
		resp.Results[i] = out
	}
	if summary.Successes == 0 {
		s.writeError(w, r, summary.FirstErr)
		return
	}
	if !summary.Mismatch {
		resp.Answer = summary.Best.Answer
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		Memory:  metrics.ReadMemory(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:     fmt.Sprintf("no route for %s", r.URL.Path),
		RequestID: RequestID(r.Context()),
	})
}

// parsePuzzleQuery resolves the puzzle and params of a request. Missing
// params fall back to the puzzle's defaults.
func (s *Server) parsePuzzleQuery(r *http.Request) (puzzle.Puzzle, puzzle.Params, error) {
	q := r.URL.Query()

	var (
		p   puzzle.Puzzle
		err error
	)
	if key := q.Get("puzzle"); key != "" {
		p, err = s.catalog.Get(key)
	} else {
		p, err = s.catalog.At(0)
	}
	if err != nil {
		return nil, puzzle.Params{}, err
	}

	params := p.Defaults()
	if raw := q.Get("divisors"); raw != "" {
		if params.Divisors, err = puzzle.ParseDivisors(raw); err != nil {
			return nil, puzzle.Params{}, err
		}
	}
	if raw := q.Get("bound"); raw != "" {
		if params.Bound, err = puzzle.ParseBound(raw); err != nil {
			return nil, puzzle.Params{}, err
		}
	}
	if err := params.Validate(); err != nil {
		return nil, puzzle.Params{}, err
	}
	if err := s.security.CheckParams(params); err != nil {
		return nil, puzzle.Params{}, err
	}
	return p, params, nil
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD, OPTIONS")
	s.writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:     fmt.Sprintf("method %s not allowed", r.Method),
		RequestID: RequestID(r.Context()),
	})
	return false
}

// statusFor maps an error to an HTTP status the way HandleSolveError maps
// errors to exit codes.
func statusFor(err error) int {
	switch {
	case apperrors.IsUserError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch {
	case apperrors.IsContextError(err):
		s.logger.Warn("request aborted", logging.String("request_id", RequestID(r.Context())), logging.Err(err))
	case status >= http.StatusInternalServerError:
		s.logger.Error("request failed", err, logging.String("request_id", RequestID(r.Context())))
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), RequestID: RequestID(r.Context())})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err)
	}
}
