// Package server provides the chart preview HTTP server.
//
// The server wraps a pipeline runner and exposes the chart over HTTP:
//
//	GET    /                serves the interactive embed page
//	GET    /api/spec        returns the spec JSON; ?width= and ?height=
//	                        act as the browser-measured draw surface
//	GET    /healthz         liveness probe
//	POST   /api/charts      saves the current chart under a name
//	GET    /api/charts      lists saved charts, newest first
//	GET    /api/charts/{id} returns a saved chart document
//	DELETE /api/charts/{id} deletes a saved chart
//
// The /api/charts routes are only mounted when a chart store is
// configured.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/pipeline"
	"github.com/matzehuels/vegaline/pkg/store"
	"github.com/matzehuels/vegaline/pkg/surface"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 10 * time.Second

// Server serves a chart preview over HTTP.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	store  store.Store
	logger *log.Logger
}

// New creates a server around a runner and base pipeline options. The
// options name the data source and chart defaults; per-request query
// parameters refine them. A nil store disables the saved-chart routes.
func New(runner *pipeline.Runner, opts pipeline.Options, st store.Store, logger *log.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "runner is required")
	}
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		opts:   opts,
		store:  st,
		logger: logger,
	}, nil
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/spec", s.handleSpec)

	if s.store != nil {
		r.Route("/api/charts", func(r chi.Router) {
			r.Post("/", s.handleSaveChart)
			r.Get("/", s.handleListCharts)
			r.Get("/{id}", s.handleGetChart)
			r.Delete("/{id}", s.handleDeleteChart)
		})
	}
	return r
}

// Serve runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	opts.Formats = []string{pipeline.FormatHTML}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(result.Artifacts[pipeline.FormatHTML])
}

// handleSpec builds and returns the spec JSON. The width and height
// query parameters carry the browser-measured container size; they fill
// the surface slot, so explicit width/height options still win.
func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	opts.Formats = []string{pipeline.FormatJSON}

	surf, err := surfaceFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if surf != nil {
		opts.Surface = surf
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// saveChartRequest is the POST /api/charts body.
type saveChartRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSaveChart(w http.ResponseWriter, r *http.Request) {
	var req saveChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Name == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "chart name is required"))
		return
	}

	opts := s.opts
	opts.Formats = []string{pipeline.FormatJSON}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	optionsJSON, err := json.Marshal(opts)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize options"))
		return
	}

	chart := store.NewChart(req.Name, optionsJSON, result.Artifacts[pipeline.FormatJSON])
	if err := s.store.Save(r.Context(), chart); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("saved chart", "id", chart.ID, "name", chart.Name)
	writeJSON(w, http.StatusCreated, chart)
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	chart, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

// surfaceFromQuery reads the width/height query parameters as the draw
// surface. Both absent means no surface override; one absent takes the
// default for that dimension.
func surfaceFromQuery(r *http.Request) (surface.Surface, error) {
	wq, hq := r.URL.Query().Get("width"), r.URL.Query().Get("height")
	if wq == "" && hq == "" {
		return nil, nil
	}

	surf := surface.Fixed{Width: surface.DefaultWidth, Height: surface.DefaultHeight}
	if wq != "" {
		w, err := strconv.Atoi(wq)
		if err != nil || w <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid width: %q", wq)
		}
		surf.Width = w
	}
	if hq != "" {
		h, err := strconv.Atoi(hq)
		if err != nil || h <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid height: %q", hq)
		}
		surf.Height = h
	}
	return surf, nil
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}

	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = errors.UserMessage(err)
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, resp)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeRenderFailed:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request with its duration and status.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
