// Package obituary turns a few facts about a person into an obituary: it
// submits the form to a remote generator and falls back to tone-specific
// local templates when the generator cannot be used.
//
// The subpackages hold the pieces (model, templates, generator, orchestrator,
// presentation, renderers); this package wires them from a config.Config for
// the bundled commands and for embedding applications.
package obituary

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/goliatone/go-obituary/pkg/config"
	"github.com/goliatone/go-obituary/pkg/generator"
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/render"
	"github.com/goliatone/go-obituary/pkg/renderers/vanilla"
	"github.com/goliatone/go-obituary/pkg/templates"
)

// FormInput aliases model.FormInput for callers that only import the root
// package.
type FormInput = model.FormInput

// Snapshot aliases orchestrator.Snapshot.
type Snapshot = orchestrator.Snapshot

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Runtime bundles the collaborators built from configuration. Generator is
// nil when no endpoint is configured; Reloader is nil unless a templates
// directory is configured.
type Runtime struct {
	Generator   orchestrator.Generator
	Store       orchestrator.TemplateStore
	Reloader    *templates.Reloader
	Substituter *templates.Substituter
	Logger      *log.Logger
}

// RuntimeOption customises NewRuntime.
type RuntimeOption func(*Runtime)

// WithLogger routes runtime logging, including template reloads, to logger.
func WithLogger(logger *log.Logger) RuntimeOption {
	return func(rt *Runtime) {
		if logger != nil {
			rt.Logger = logger
		}
	}
}

// NewRuntime builds the generator client, template store and substituter
// described by cfg.
func NewRuntime(cfg config.Config, options ...RuntimeOption) (Runtime, error) {
	rt := Runtime{
		Store:       templates.Default(),
		Substituter: templates.NewSubstituter(templates.WithDateLayout(cfg.DateLayout)),
		Logger:      log.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&rt)
		}
	}

	if cfg.TemplatesDir != "" {
		reloader, err := templates.NewReloader(cfg.TemplatesDir, rt.Logger)
		if err != nil {
			return Runtime{}, fmt.Errorf("obituary: %w", err)
		}
		rt.Store = reloader
		rt.Reloader = reloader
	}

	if cfg.Endpoint != "" {
		options := []generator.Option{
			generator.WithUserAgent("go-obituary"),
		}
		if cfg.Timeout > 0 {
			options = append(options, generator.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		if !cfg.ValidateContract {
			options = append(options, generator.WithContract(nil))
		}
		client, err := generator.New(cfg.Endpoint, options...)
		if err != nil {
			return Runtime{}, fmt.Errorf("obituary: %w", err)
		}
		rt.Generator = client
	}
	return rt, nil
}

// Orchestrator returns a fresh orchestrator over the runtime collaborators.
// Extra options are applied last.
func (rt Runtime) Orchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithTemplateStore(rt.Store),
		orchestrator.WithSubstituter(rt.Substituter),
		orchestrator.WithLogger(rt.Logger),
	}
	if rt.Generator != nil {
		base = append(base, orchestrator.WithGenerator(rt.Generator))
	}
	return orchestrator.New(append(base, options...)...)
}

// WatchTemplates starts reloading the templates directory on change. It is a
// no-op when the runtime serves the embedded set.
func (rt Runtime) WatchTemplates(ctx context.Context) error {
	if rt.Reloader == nil {
		return nil
	}
	return rt.Reloader.Watch(ctx)
}

// Generate runs one submission with the runtime collaborators.
func (rt Runtime) Generate(ctx context.Context, in FormInput) (Snapshot, error) {
	return rt.Orchestrator().Submit(ctx, in)
}

// NewPageRenderer builds the HTML page renderer described by cfg.
func NewPageRenderer(cfg config.Config) (*vanilla.Renderer, error) {
	options := []vanilla.Option{
		vanilla.WithThemeSelection(vanilla.DefaultSelection(cfg.ThemeVariant)),
	}
	if cfg.PageTemplatesDir != "" {
		options = append(options, vanilla.WithTemplatesDir(cfg.PageTemplatesDir))
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("obituary: page renderer: %w", err)
	}
	return renderer, nil
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// FallbackTemplates exposes the embedded tone templates.
func FallbackTemplates() fs.FS {
	return templates.DefaultsFS()
}
