package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/presentation"
	"github.com/goliatone/go-obituary/pkg/render"
)

// Action is an entry of the post-generation menu.
type Action string

const (
	ActionCopy     Action = "copy"
	ActionDownload Action = "download"
	ActionEdit     Action = "edit"
	ActionReset    Action = "reset"
	ActionFAQ      Action = "faq"
	ActionQuit     Action = "quit"
)

var actionLabels = map[Action]string{
	ActionCopy:     "Copy to clipboard",
	ActionDownload: "Download as " + presentation.DownloadFilename,
	ActionEdit:     "Edit details and generate again",
	ActionReset:    "Start over",
	ActionFAQ:      "Frequently asked questions",
	ActionQuit:     "Quit",
}

// Label returns the menu text for the action.
func (a Action) Label() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return string(a)
}

// Actions lists the menu entries available for snap. Copy and download are
// offered only when the preview holds generated content.
func Actions(snap orchestrator.Snapshot) []Action {
	if snap.HasContent() {
		return []Action{ActionCopy, ActionDownload, ActionEdit, ActionReset, ActionFAQ, ActionQuit}
	}
	return []Action{ActionEdit, ActionFAQ, ActionQuit}
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithClipboard overrides the clipboard used by the copy action.
func WithClipboard(cb presentation.Clipboard) SessionOption {
	return func(s *Session) {
		if cb != nil {
			s.clipboard = cb
		}
	}
}

// WithDownloadDir sets where the download action writes obituary.txt.
func WithDownloadDir(dir string) SessionOption {
	return func(s *Session) {
		s.downloadDir = dir
	}
}

// WithRenderOptions sets the options passed to every render.
func WithRenderOptions(opts render.RenderOptions) SessionOption {
	return func(s *Session) {
		s.renderOpts = opts
	}
}

// WithFAQ replaces the FAQ entries.
func WithFAQ(items []presentation.FAQItem) SessionOption {
	return func(s *Session) {
		s.faq = presentation.NewAccordion(items)
	}
}

// Session drives the terminal flow: collect the form, submit it through the
// orchestrator, show the result and offer the presentation actions.
type Session struct {
	renderer    *Renderer
	orch        *orchestrator.Orchestrator
	clipboard   presentation.Clipboard
	downloadDir string
	renderOpts  render.RenderOptions
	faq         *presentation.Accordion
}

// NewSession wires a session. The orchestrator should be built with
// renderer.View so loading is announced.
func NewSession(renderer *Renderer, orch *orchestrator.Orchestrator, options ...SessionOption) (*Session, error) {
	if renderer == nil {
		return nil, errors.New("tui: renderer is required")
	}
	if orch == nil {
		return nil, errors.New("tui: orchestrator is required")
	}
	s := &Session{
		renderer:    renderer,
		orch:        orch,
		clipboard:   presentation.SystemClipboard{},
		downloadDir: ".",
		faq:         presentation.NewAccordion(presentation.DefaultFAQ()),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Run loops until the user quits or aborts. Quitting returns nil; aborting
// returns ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	input := model.FormInput{Tone: model.DefaultTone}
	var errs render.ErrorMapping

	for {
		in, err := s.renderer.Collect(ctx, input, errs)
		if err != nil {
			return err
		}
		input = in

		snap, err := s.orch.Submit(ctx, in)
		errs = render.MapSubmissionError(err)
		if showErr := s.show(ctx, snap, errs); showErr != nil {
			return showErr
		}
		if err != nil {
			var validation *model.ValidationError
			if errors.As(err, &validation) {
				continue
			}
			return err
		}

		next, err := s.menu(ctx)
		if err != nil {
			return err
		}
		switch next {
		case ActionQuit:
			return nil
		case ActionReset:
			input = model.FormInput{Tone: model.DefaultTone}
			errs = render.ErrorMapping{}
		}
	}
}

// menu handles actions until one of them leaves the result screen (edit,
// reset or quit) and returns it.
func (s *Session) menu(ctx context.Context) (Action, error) {
	for {
		snap := s.orch.Current()
		actions := Actions(snap)
		labels := make([]string, len(actions))
		for i, action := range actions {
			labels[i] = action.Label()
		}
		idx, err := s.renderer.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: labels,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(actions) {
			return "", fmt.Errorf("tui: action: %w", ErrNoSelection)
		}

		switch action := actions[idx]; action {
		case ActionCopy:
			ack := presentation.Copy(s.clipboard, snap.Preview.HTML)
			if err := s.notify(ctx, ack.OK, ack.Message); err != nil {
				return "", err
			}
		case ActionDownload:
			path, err := presentation.NewDownload(snap.Preview.HTML).WriteFile(s.downloadDir)
			if err != nil {
				if err := s.notify(ctx, false, err.Error()); err != nil {
					return "", err
				}
				continue
			}
			if err := s.notify(ctx, true, "Saved "+path); err != nil {
				return "", err
			}
		case ActionFAQ:
			if err := s.browseFAQ(ctx); err != nil {
				return "", err
			}
		case ActionReset:
			if err := s.show(ctx, s.orch.Reset(), render.ErrorMapping{}); err != nil {
				return "", err
			}
			return action, nil
		default:
			return action, nil
		}
	}
}

func (s *Session) browseFAQ(ctx context.Context) error {
	items := s.faq.Items()
	options := make([]string, 0, len(items)+1)
	for _, item := range items {
		options = append(options, item.Question)
	}
	back := len(options)
	options = append(options, "Back")

	for {
		idx, err := s.renderer.driver.Select(ctx, SelectConfig{
			Message: "Questions:",
			Options: options,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= back {
			return nil
		}
		s.faq.Toggle(idx)
		if open, ok := s.faq.Open(); ok {
			item := items[open]
			if err := s.renderer.driver.Info(ctx, item.Question+"\n"+item.Answer); err != nil {
				return err
			}
		}
	}
}

func (s *Session) show(ctx context.Context, snap orchestrator.Snapshot, errs render.ErrorMapping) error {
	page := render.NewPage(snap)
	page.Errors = errs
	return s.renderer.Show(ctx, page, s.renderOpts)
}

func (s *Session) notify(ctx context.Context, ok bool, message string) error {
	prefix := s.renderer.theme.InfoPrefix
	if !ok {
		prefix = s.renderer.theme.ErrorPrefix
	}
	return s.renderer.driver.Info(ctx, prefix+message)
}
