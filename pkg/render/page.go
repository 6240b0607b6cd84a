package render

import (
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/presentation"
)

// DefaultTitle is used when RenderOptions.Title is empty.
const DefaultTitle = "AI Obituary Writer"

// Page is everything a renderer needs to draw one screen: the orchestrator
// snapshot, the FAQ accordion, the tones offered in the form and any
// submission errors.
type Page struct {
	Snapshot orchestrator.Snapshot
	FAQ      *presentation.Accordion
	Tones    []model.Tone
	Errors   ErrorMapping
}

// NewPage builds a page for snap with the default FAQ and tone list.
func NewPage(snap orchestrator.Snapshot) Page {
	return Page{
		Snapshot: snap,
		FAQ:      presentation.NewAccordion(presentation.DefaultFAQ()),
		Tones:    model.Tones(),
	}
}

// SelectedTone resolves the tone shown as selected in the form, falling back
// to the default tone for empty or unknown input.
func (p Page) SelectedTone() model.Tone {
	if tone, ok := model.ParseTone(string(p.Snapshot.Input.Tone)); ok {
		return tone
	}
	return model.DefaultTone
}
