// Package server serves freshly rendered router images over HTTP.
//
// Every image request runs the pipeline against the router and names files
// on disk, so editing either file and reloading the page shows the change.
// Unchanged inputs are answered from the artifact cache.
//
//	GET /                  HTML page showing both views
//	GET /{kind}.{format}   one artifact, e.g. /diagram.svg or /matrix.png
//	GET /mapping.json      the decoded mapping with names
//	GET /healthz           liveness
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/hxmidi/midimap/pkg/errors"
	pkgio "github.com/hxmidi/midimap/pkg/io"
	"github.com/hxmidi/midimap/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// context ends.
const shutdownTimeout = 5 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatPNG: "image/png",
	pipeline.FormatSVG: "image/svg+xml",
}

// Server renders artifacts on request.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
}

// New creates a server. opts is the template for every run; its Kinds and
// Formats are replaced per request.
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, opts: opts, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/mapping.json", s.handleMapping)
	r.Get("/{kind}.{format}", s.handleArtifact)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("serving", "addr", addr, "router", s.opts.RouterPath)
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	kind, format := chi.URLParam(r, "kind"), chi.URLParam(r, "format")
	if pipeline.ValidateKind(kind) != nil || pipeline.ValidateFormat(format) != nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	opts := s.opts
	opts.Kinds = []string{kind}
	opts.Formats = []string{format}
	res, err := s.runner.Run(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	a, ok := res.Artifact(kind, format)
	if !ok {
		writeJSONError(w, http.StatusNotFound, kind+" is not available as "+format)
		return
	}
	if a.Err != nil {
		writeError(w, a.Err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	if a.Cached {
		w.Header().Set("X-Cache", "hit")
	}
	_, _ = w.Write(a.Data)
}

func (s *Server) handleMapping(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	res, err := s.runner.Load(r.Context(), &opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := pkgio.WriteMapping(w, res.Mapping, res.Names); err != nil {
		s.logger.Error("write mapping", "err", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: sans-serif">
<h1>{{.Title}}</h1>
<p><a href="/mapping.json">mapping.json</a></p>
<img src="/diagram.svg" alt="node-link diagram" style="max-height: 90vh">
<img src="/matrix.png" alt="adjacency matrix" style="vertical-align: top">
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := pipeline.TitlePrefix + pipeline.RouterName(s.opts.RouterPath)
	if err := indexTemplate.Execute(w, struct{ Title string }{title}); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

// requestLogger tags each request with an ID (kept from X-Request-ID when
// the client sends one) and logs it on completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNoOrder:
		return http.StatusConflict
	case errors.ErrCodeInvalidJSON, errors.ErrCodeMissingKey, errors.ErrCodeWrongType, errors.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
