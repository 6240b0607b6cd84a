package orchestrator

import (
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/presentation"
)

// Phase is the exclusive state of the submission cycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Severity selects how a notice is styled.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityInfo  Severity = "info"
)

// FallbackNotice is shown alongside content rendered from local templates.
const FallbackNotice = "Note: Using sample data as the AI service is temporarily unavailable. Your obituary is still beautifully formatted."

// Notice is the message shown in the error/notice region.
type Notice struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Focus hints which region the front end should bring into view.
type Focus string

const (
	FocusNone    Focus = ""
	FocusForm    Focus = "form"
	FocusPreview Focus = "preview"
)

// Snapshot is the full presentation state after a transition. The visibility
// flags are derived from Phase and kept explicit so views never recompute
// them.
type Snapshot struct {
	Phase          Phase                  `json:"state"`
	Notice         *Notice                `json:"notice,omitempty"`
	Input          model.FormInput        `json:"input"`
	Preview        model.GeneratedContent `json:"preview"`
	LoadingVisible bool                   `json:"loading"`
	SuccessVisible bool                   `json:"success"`
	ActionsVisible bool                   `json:"actions"`
	SubmitEnabled  bool                   `json:"submitEnabled"`
	Focus          Focus                  `json:"focus,omitempty"`
}

// IdleSnapshot is the state of a freshly loaded or reset form.
func IdleSnapshot() Snapshot {
	return Snapshot{
		Phase:         PhaseIdle,
		Preview:       model.GeneratedContent{HTML: presentation.PreviewPlaceholderHTML},
		SubmitEnabled: true,
	}
}

// HasContent reports whether the preview holds generated content that the
// copy and download actions may use.
func (s Snapshot) HasContent() bool {
	return s.Phase == PhaseSuccess && !s.Preview.Empty()
}

// View receives every published snapshot.
type View interface {
	Apply(Snapshot)
}

// ViewFunc adapts a function to View.
type ViewFunc func(Snapshot)

// Apply calls f.
func (f ViewFunc) Apply(s Snapshot) {
	if f != nil {
		f(s)
	}
}
