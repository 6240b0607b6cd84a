package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/goliatone/go-obituary/pkg/generator"
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/templates"
)

// Generator produces content remotely. Any returned error triggers the
// fallback path.
type Generator interface {
	Submit(ctx context.Context, in model.FormInput) (model.GeneratedContent, error)
}

// TemplateStore resolves fallback templates by tone.
type TemplateStore interface {
	Lookup(tone model.Tone) model.Template
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithGenerator injects the remote generator. Without one every submission
// takes the fallback path.
func WithGenerator(gen Generator) Option {
	return func(o *Orchestrator) {
		o.generator = gen
	}
}

// WithTemplateStore overrides the fallback template store.
func WithTemplateStore(store TemplateStore) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.store = store
		}
	}
}

// WithSubstituter overrides the placeholder substituter (clock, date layout).
func WithSubstituter(sub *templates.Substituter) Option {
	return func(o *Orchestrator) {
		if sub != nil {
			o.substituter = sub
		}
	}
}

// WithView registers the observer notified on each transition.
func WithView(view View) Option {
	return func(o *Orchestrator) {
		o.view = view
	}
}

// WithLogger overrides the logger used for remote failures.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInitialSnapshot seeds the state, for front ends that rebuild an
// orchestrator per request.
func WithInitialSnapshot(snap Snapshot) Option {
	return func(o *Orchestrator) {
		o.current = snap
	}
}

// Orchestrator owns the state of a single form session. It is not safe for
// concurrent use; front ends create one per session or request.
type Orchestrator struct {
	generator   Generator
	store       TemplateStore
	substituter *templates.Substituter
	view        View
	logger      *log.Logger
	current     Snapshot
}

// New constructs an Orchestrator starting in the idle state.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		store:       templates.Default(),
		substituter: templates.NewSubstituter(),
		logger:      log.Default(),
		current:     IdleSnapshot(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Current returns the last published snapshot.
func (o *Orchestrator) Current() Snapshot {
	return o.current
}

// Submit runs one cycle. A *model.ValidationError is the only error returned:
// remote failures are logged and converted into fallback content. The final
// snapshot always has the loading indicator hidden and submit enabled.
func (o *Orchestrator) Submit(ctx context.Context, in model.FormInput) (snap Snapshot, err error) {
	if ctx == nil {
		return o.current, errors.New("orchestrator: context is required")
	}

	if err := model.Validate(in); err != nil {
		message := model.RequiredFieldsMessage
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			message = vErr.Message()
		}
		rejected := Snapshot{
			Phase:         PhaseError,
			Notice:        &Notice{Message: message, Severity: SeverityError},
			Input:         in,
			Preview:       o.current.Preview,
			SubmitEnabled: true,
			Focus:         FocusForm,
		}
		o.publish(rejected)
		return rejected, err
	}

	snap = Snapshot{
		Phase:          PhaseLoading,
		Input:          in,
		Preview:        o.current.Preview,
		LoadingVisible: true,
	}
	o.publish(snap)

	defer func() {
		snap.LoadingVisible = false
		snap.SubmitEnabled = true
		o.publish(snap)
	}()

	content, callErr := o.generate(ctx, in)
	if callErr != nil {
		o.logger.Printf("orchestrator: remote generation failed, using fallback: %v", callErr)
		return o.fallback(in), nil
	}

	return Snapshot{
		Phase:          PhaseSuccess,
		Input:          in,
		Preview:        content,
		SuccessVisible: true,
		ActionsVisible: true,
		Focus:          FocusPreview,
	}, nil
}

// Reset clears the form and restores the placeholder preview.
func (o *Orchestrator) Reset() Snapshot {
	snap := IdleSnapshot()
	snap.Focus = FocusForm
	o.publish(snap)
	return snap
}

// Fallback renders the local template for in without contacting the remote
// generator.
func (o *Orchestrator) Fallback(in model.FormInput) model.GeneratedContent {
	tpl := o.store.Lookup(in.Tone)
	html := o.substituter.Render(tpl, templates.FallbackValues(in))
	if unresolved := templates.Unresolved(html); len(unresolved) > 0 {
		o.logger.Printf("orchestrator: fallback %s template left %d placeholders unresolved", tpl.Tone, len(unresolved))
	}
	return model.GeneratedContent{HTML: html, Fallback: true}
}

func (o *Orchestrator) fallback(in model.FormInput) Snapshot {
	return Snapshot{
		Phase:          PhaseSuccess,
		Notice:         &Notice{Message: FallbackNotice, Severity: SeverityInfo},
		Input:          in,
		Preview:        o.Fallback(in),
		SuccessVisible: true,
		ActionsVisible: true,
		Focus:          FocusPreview,
	}
}

func (o *Orchestrator) generate(ctx context.Context, in model.FormInput) (content model.GeneratedContent, err error) {
	if o.generator == nil {
		return model.GeneratedContent{}, &generator.Failure{
			Kind:    generator.KindTransport,
			Message: "no remote generator configured",
		}
	}

	defer func() {
		if r := recover(); r != nil {
			content = model.GeneratedContent{}
			err = &generator.Failure{
				Kind: generator.KindUnexpected,
				Err:  fmt.Errorf("panic: %v", r),
			}
		}
	}()

	content, err = o.generator.Submit(ctx, in)
	if err == nil && content.Empty() {
		err = &generator.Failure{Kind: generator.KindDecode, Message: "generator returned empty content"}
	}
	return content, err
}

func (o *Orchestrator) publish(snap Snapshot) {
	o.current = snap
	if o.view != nil {
		o.view.Apply(snap)
	}
}
