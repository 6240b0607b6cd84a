package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-obituary/pkg/render"
	rendertemplate "github.com/goliatone/go-obituary/pkg/render/template"
	"github.com/goliatone/go-obituary/pkg/render/template/pongo"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	sanitize         func(string) string
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide page.tmpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the preview sanitiser. The default is
// SanitizePreview.
func WithSanitizer(fn func(string) string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.sanitize = fn
		}
	}
}

// WithTheme applies a resolved go-theme configuration to the page.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithThemeSelection resolves selection through ResolveTheme.
func WithThemeSelection(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.theme = ResolveTheme(selection)
	}
}

// Renderer draws the obituary page as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	sanitize  func(string) string
	theme     *theme.RendererConfig
}

// New constructs the vanilla renderer applying any provided options. The
// default theme is the base variant of DefaultManifest.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		sanitize:   SanitizePreview,
		theme:      ResolveTheme(DefaultSelection("")),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		sanitize:  cfg.sanitize,
		theme:     cfg.theme,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws page. Generated markup is sanitised before it reaches the
// preview region; everything else is escaped by the template engine.
func (r *Renderer) Render(_ context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(PageTemplate, r.viewData(page, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) viewData(page render.Page, opts render.RenderOptions) map[string]any {
	snap := page.Snapshot

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = render.DefaultTitle
	}

	var notice map[string]any
	if snap.Notice != nil && strings.TrimSpace(snap.Notice.Message) != "" {
		notice = map[string]any{
			"message":  snap.Notice.Message,
			"severity": string(snap.Notice.Severity),
		}
	}

	preview := snap.Preview.HTML
	if r.sanitize != nil {
		preview = r.sanitize(preview)
	}

	selected := page.SelectedTone()
	tones := make([]map[string]any, 0, len(page.Tones))
	for _, tone := range page.Tones {
		tones = append(tones, map[string]any{
			"value":    string(tone),
			"label":    tone.Label(),
			"selected": tone == selected,
		})
	}

	fieldErrors := make(map[string]any, len(page.Errors.Fields))
	for field, messages := range page.Errors.Fields {
		if len(messages) > 0 {
			fieldErrors[field] = messages[0]
		}
	}

	hidden := make([]map[string]any, 0, len(opts.Hidden))
	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	themeCtx := buildThemeContext(r.theme)
	stylesheet, script := r.assetURLs(opts)

	return map[string]any{
		"title":          title,
		"state":          string(snap.Phase),
		"focus":          string(snap.Focus),
		"notice":         notice,
		"input":          map[string]any{"name": snap.Input.Name, "age": snap.Input.Age, "details": snap.Input.Details},
		"tones":          tones,
		"preview":        preview,
		"loading":        snap.LoadingVisible,
		"success":        snap.SuccessVisible,
		"actions":        snap.ActionsVisible && snap.HasContent(),
		"submit_enabled": snap.SubmitEnabled,
		"field_errors":   fieldErrors,
		"hidden":         hidden,
		"faq":            faqItems(page, opts),
		"theme": map[string]any{
			"name":    themeCtx.Name,
			"variant": themeCtx.Variant,
			"css":     themeCtx.CSSVarsStyle,
		},
		"stylesheet_url": stylesheet,
		"script_url":     script,
		"generate_url":   opts.Route("generate"),
		"download_url":   opts.Route("download"),
		"reset_url":      opts.Route("reset"),
	}
}

func (r *Renderer) assetURLs(opts render.RenderOptions) (string, string) {
	if prefix := strings.TrimRight(strings.TrimSpace(opts.RuntimePrefix), "/"); prefix != "" {
		return prefix + "/" + StylesheetName, prefix + "/" + RuntimeScriptName
	}
	if r.theme != nil && r.theme.AssetURL != nil {
		return r.theme.AssetURL("stylesheet"), r.theme.AssetURL("script")
	}
	return "", ""
}

// faqItems links each question to the page state reached by toggling it, so
// the accordion works without the runtime script.
func faqItems(page render.Page, opts render.RenderOptions) []map[string]any {
	if page.FAQ == nil {
		return nil
	}
	items := page.FAQ.Items()
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		open := page.FAQ.IsOpen(i)
		toggle := opts.Route("") + "?faq=" + strconv.Itoa(i)
		if open {
			toggle = opts.Route("")
		}
		out = append(out, map[string]any{
			"index":      i,
			"question":   item.Question,
			"answer":     item.Answer,
			"open":       open,
			"toggle_url": toggle,
		})
	}
	return out
}
