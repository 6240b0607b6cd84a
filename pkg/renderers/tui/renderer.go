package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/presentation"
	"github.com/goliatone/go-obituary/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions and owns the
// prompts used to fill in the form.
type Renderer struct {
	driver PromptDriver
	theme  Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a terminal renderer with defaults (survey driver on stdout).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		theme: DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render draws the page as plain text: notice, status and preview, followed
// by the open FAQ answer when there is one.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := page.Snapshot
	var b strings.Builder

	if title := strings.TrimSpace(opts.Title); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	if snap.Notice != nil && strings.TrimSpace(snap.Notice.Message) != "" {
		prefix := r.theme.InfoPrefix
		if snap.Notice.Severity == orchestrator.SeverityError {
			prefix = r.theme.ErrorPrefix
		}
		b.WriteString(prefix)
		b.WriteString(snap.Notice.Message)
		b.WriteString("\n")
	}
	switch {
	case snap.LoadingVisible:
		b.WriteString("Generating obituary...\n")
	case snap.SuccessVisible:
		b.WriteString("Obituary ready.\n")
	}

	if r.theme.Divider != "" {
		b.WriteString(r.theme.Divider)
		b.WriteString("\n")
	}
	b.WriteString(presentation.PlainText(snap.Preview.HTML))
	b.WriteString("\n")
	if r.theme.Divider != "" {
		b.WriteString(r.theme.Divider)
		b.WriteString("\n")
	}

	if idx, ok := page.FAQ.Open(); ok {
		item := page.FAQ.Items()[idx]
		b.WriteString("\nQ: ")
		b.WriteString(item.Question)
		b.WriteString("\nA: ")
		b.WriteString(item.Answer)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// View returns an orchestrator observer that announces the loading phase.
func (r *Renderer) View(ctx context.Context) orchestrator.View {
	return orchestrator.ViewFunc(func(snap orchestrator.Snapshot) {
		if snap.LoadingVisible {
			_ = r.driver.Info(ctx, r.theme.InfoPrefix+"Generating obituary...")
		}
	})
}

// Show renders page and prints it through the prompt driver.
func (r *Renderer) Show(ctx context.Context, page render.Page, opts render.RenderOptions) error {
	out, err := r.Render(ctx, page, opts)
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}

// Collect prompts for every form field, offering defaults as the starting
// values. Field errors from a previous attempt are printed before the prompt
// they belong to. Empty required fields are accepted here and rejected by the
// orchestrator so both front ends share one validation path.
func (r *Renderer) Collect(ctx context.Context, defaults model.FormInput, errs render.ErrorMapping) (model.FormInput, error) {
	if r.driver == nil {
		return model.FormInput{}, errors.New("tui: prompt driver is nil")
	}
	var in model.FormInput
	var err error

	if err = r.fieldErrors(ctx, errs, "name"); err != nil {
		return model.FormInput{}, err
	}
	in.Name, err = r.driver.Input(ctx, InputConfig{
		Message: "Full name:",
		Default: defaults.Name,
		Help:    "Required. The name of the person being remembered.",
	})
	if err != nil {
		return model.FormInput{}, err
	}

	in.Age, err = r.driver.Input(ctx, InputConfig{
		Message: "Age (optional):",
		Default: defaults.Age,
	})
	if err != nil {
		return model.FormInput{}, err
	}

	if err = r.fieldErrors(ctx, errs, "details"); err != nil {
		return model.FormInput{}, err
	}
	in.Details, err = r.driver.TextArea(ctx, TextAreaConfig{
		Message: "Life details:",
		Default: defaults.Details,
		Help:    "Required. Family, career, passions, anything worth mentioning.",
	})
	if err != nil {
		return model.FormInput{}, err
	}

	in.Tone, err = r.selectTone(ctx, defaults.Tone)
	if err != nil {
		return model.FormInput{}, err
	}
	return in, nil
}

func (r *Renderer) selectTone(ctx context.Context, current model.Tone) (model.Tone, error) {
	tones := model.Tones()
	selected, ok := model.ParseTone(string(current))
	if !ok {
		selected = model.DefaultTone
	}

	labels := make([]string, len(tones))
	defaultIndex := 0
	for i, tone := range tones {
		labels[i] = tone.Label()
		if tone == selected {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Tone:",
		Options:      labels,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(tones) {
		return "", fmt.Errorf("tui: tone: %w", ErrNoSelection)
	}
	return tones[idx], nil
}

func (r *Renderer) fieldErrors(ctx context.Context, errs render.ErrorMapping, field string) error {
	for _, message := range errs.Fields[field] {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+field+": "+message); err != nil {
			return err
		}
	}
	return nil
}
