// Package server exposes the obituary form over HTTP. Every request builds its
// own orchestrator, so handlers share only read-only collaborators.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-obituary/internal/metrics"
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/presentation"
	"github.com/goliatone/go-obituary/pkg/render"
	"github.com/goliatone/go-obituary/pkg/renderers/vanilla"
	"github.com/goliatone/go-obituary/pkg/templates"
)

const maxFormBytes = 1 << 20

// RequestIDHeader carries the request identifier in and out of the server.
const RequestIDHeader = "X-Request-ID"

// Option customises the server.
type Option func(*Server)

// WithGenerator sets the remote generator. Without one every submission uses
// the local templates.
func WithGenerator(gen orchestrator.Generator) Option {
	return func(s *Server) {
		s.generator = gen
	}
}

// WithTemplateStore overrides the fallback template store.
func WithTemplateStore(store orchestrator.TemplateStore) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSubstituter overrides the placeholder substituter.
func WithSubstituter(sub *templates.Substituter) Option {
	return func(s *Server) {
		if sub != nil {
			s.substituter = sub
		}
	}
}

// WithRenderer overrides the HTML page renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithRenderOptions sets the options passed to every render. BasePath also
// decides where the handlers are mounted.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Server) {
		s.renderOpts = opts
	}
}

// WithRuntimeAssets serves files under <base>/runtime/.
func WithRuntimeAssets(assets fs.FS) Option {
	return func(s *Server) {
		s.assets = assets
	}
}

// WithSanitizer overrides how generated markup is cleaned before it is
// returned in JSON responses.
func WithSanitizer(fn func(string) string) Option {
	return func(s *Server) {
		if fn != nil {
			s.sanitize = fn
		}
	}
}

// WithLogger sets the logger used by handlers and per-request orchestrators.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation and the metrics route.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// Server holds the collaborators shared across requests.
type Server struct {
	generator   orchestrator.Generator
	store       orchestrator.TemplateStore
	substituter *templates.Substituter
	renderer    render.Renderer
	renderOpts  render.RenderOptions
	assets      fs.FS
	sanitize    func(string) string
	logger      *log.Logger
	metrics     *metrics.Metrics
}

// New builds a server. The default renderer is the vanilla HTML page.
func New(options ...Option) (*Server, error) {
	s := &Server{
		store:       templates.Default(),
		substituter: templates.NewSubstituter(),
		sanitize:    vanilla.SanitizePreview,
		logger:      log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("server: default renderer: %w", err)
		}
		s.renderer = renderer
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	base := s.renderOpts.Route("")

	mux.HandleFunc(base, s.handlePage)
	mux.HandleFunc(s.renderOpts.Route("generate"), s.handleGenerate)
	mux.HandleFunc(s.renderOpts.Route("reset"), s.handleReset)
	mux.HandleFunc(s.renderOpts.Route("download"), s.handleDownload)
	mux.HandleFunc(s.renderOpts.Route("healthz"), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.assets != nil {
		runtime := s.renderOpts.Route("runtime/")
		mux.Handle(runtime, http.StripPrefix(runtime, http.FileServerFS(s.assets)))
	}
	if s.metrics != nil {
		mux.Handle(s.renderOpts.Route("metrics"), s.metrics.Handler())
	}
	return withRequestID(mux)
}

type requestIDKey struct{}

// RequestID returns the identifier assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = "req_" + uuid.New().String()[:16]
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) orchestrator(ctx context.Context) *orchestrator.Orchestrator {
	logger := s.logger
	if id := RequestID(ctx); id != "" {
		logger = log.New(s.logger.Writer(), s.logger.Prefix()+"["+id+"] ", s.logger.Flags())
	}
	return orchestrator.New(
		orchestrator.WithGenerator(s.metrics.InstrumentGenerator(s.generator)),
		orchestrator.WithTemplateStore(s.store),
		orchestrator.WithSubstituter(s.substituter),
		orchestrator.WithLogger(logger),
	)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.renderOpts.Route("") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowedWith(w, http.MethodGet, http.MethodHead)
		return
	}

	page := render.NewPage(orchestrator.IdleSnapshot())
	if raw := strings.TrimSpace(r.URL.Query().Get("faq")); raw != "" {
		if idx, err := strconv.Atoi(raw); err == nil {
			page.FAQ.Toggle(idx)
		}
	}
	s.writePage(w, r, http.StatusOK, page)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowedWith(w, http.MethodPost)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	in := model.FormInputFromValues(r.PostForm)
	snap, err := s.orchestrator(r.Context()).Submit(r.Context(), in)
	s.metrics.RecordSubmission(snap, err)

	status := http.StatusOK
	var validation *model.ValidationError
	switch {
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	case err != nil:
		s.logger.Printf("server: generate [%s]: %v", RequestID(r.Context()), err)
		http.Error(w, "generation failed", http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		s.writeJSON(w, status, snap, render.MapSubmissionError(err))
		return
	}
	page := render.NewPage(snap)
	page.Errors = render.MapSubmissionError(err)
	s.writePage(w, r, status, page)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowedWith(w, http.MethodPost)
		return
	}
	snap := s.orchestrator(r.Context()).Reset()
	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, snap, render.ErrorMapping{})
		return
	}
	s.writePage(w, r, http.StatusOK, render.NewPage(snap))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowedWith(w, http.MethodPost)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	content := r.PostForm.Get("content")
	if strings.TrimSpace(content) == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}
	presentation.NewDownload(content).ServeHTTP(w, r)
	s.metrics.RecordDownload()
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, page render.Page) {
	output, err := s.renderer.Render(r.Context(), page, s.renderOpts)
	if err != nil {
		s.logger.Printf("server: render page: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(output); err != nil {
		s.logger.Printf("server: write response: %v", err)
	}
}

// Response is the JSON body returned to script-driven clients.
type Response struct {
	State    orchestrator.Phase   `json:"state"`
	Obituary string               `json:"obituary"`
	Fallback bool                 `json:"fallback,omitempty"`
	Notice   *orchestrator.Notice `json:"notice,omitempty"`
	Errors   map[string][]string  `json:"errors,omitempty"`
	Focus    orchestrator.Focus   `json:"focus,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, snap orchestrator.Snapshot, errs render.ErrorMapping) {
	payload := Response{
		State:    snap.Phase,
		Obituary: s.sanitize(snap.Preview.HTML),
		Fallback: snap.Preview.Fallback,
		Notice:   snap.Notice,
		Errors:   errs.Fields,
		Focus:    snap.Focus,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("server: write json response: %v", err)
	}
}

func wantsJSON(r *http.Request) bool {
	if r == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("format")), "json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func methodNotAllowedWith(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
