package model

import (
	"net/url"
	"strings"
)

// Tone names the style category used to pick a fallback template.
type Tone string

const (
	ToneFormal      Tone = "formal"
	ToneHeartfelt   Tone = "heartfelt"
	ToneCelebratory Tone = "celebratory"
	ToneReligious   Tone = "religious"
)

// DefaultTone is used whenever a tone is missing or unrecognised.
const DefaultTone = ToneHeartfelt

// Tones lists the recognised tones in display order.
func Tones() []Tone {
	return []Tone{ToneFormal, ToneHeartfelt, ToneCelebratory, ToneReligious}
}

// ParseTone resolves raw input into a Tone. Matching ignores case and
// surrounding whitespace; the boolean reports whether the value was known.
func ParseTone(raw string) (Tone, bool) {
	candidate := Tone(strings.ToLower(strings.TrimSpace(raw)))
	for _, tone := range Tones() {
		if tone == candidate {
			return tone, true
		}
	}
	return "", false
}

// Label returns a human readable name for prompts and select options.
func (t Tone) Label() string {
	switch t {
	case ToneFormal:
		return "Formal"
	case ToneHeartfelt:
		return "Heartfelt"
	case ToneCelebratory:
		return "Celebratory"
	case ToneReligious:
		return "Religious"
	default:
		return string(t)
	}
}

// FormInput is the immutable snapshot of the form taken when the user
// submits. Tone keeps whatever the caller supplied; consumers that need a
// recognised value resolve it through ParseTone or the template store.
type FormInput struct {
	Name    string `json:"name"`
	Age     string `json:"age,omitempty"`
	Details string `json:"details"`
	Tone    Tone   `json:"tone"`
}

// FormInputFromValues builds a FormInput from url-encoded form values using the
// field names exposed by the page (name, age, details, tone).
func FormInputFromValues(values url.Values) FormInput {
	return FormInput{
		Name:    values.Get("name"),
		Age:     values.Get("age"),
		Details: values.Get("details"),
		Tone:    Tone(values.Get("tone")),
	}
}

// Values encodes the input using the same keys the remote endpoint expects.
func (in FormInput) Values() url.Values {
	values := url.Values{}
	values.Set("name", in.Name)
	values.Set("age", in.Age)
	values.Set("details", in.Details)
	values.Set("tone", string(in.Tone))
	return values
}

// Template pairs a tone with a body holding bracketed placeholders such as
// [Name] or [Date]. Templates are static once loaded.
type Template struct {
	Tone Tone   `json:"tone" yaml:"tone"`
	Body string `json:"body" yaml:"body"`
}

// GeneratedContent is the markup shown in the preview region. Fallback marks
// content produced by local substitution rather than the remote endpoint.
type GeneratedContent struct {
	HTML     string `json:"html"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Empty reports whether there is any markup to show.
func (c GeneratedContent) Empty() bool {
	return strings.TrimSpace(c.HTML) == ""
}
