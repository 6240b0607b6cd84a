package templates

import (
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-obituary/pkg/model"
)

// Placeholder is a literal bracket token recognised by the Substituter.
type Placeholder string

const (
	PlaceholderName    Placeholder = "[Name]"
	PlaceholderAge     Placeholder = "[Age]"
	PlaceholderDetails Placeholder = "[Details]"
	PlaceholderDate    Placeholder = "[Date]"
)

// DefaultDateLayout mirrors a short en-US calendar date (month/day/year).
const DefaultDateLayout = "1/2/2006"

// Placeholders lists the recognised tokens in substitution order.
func Placeholders() []Placeholder {
	return []Placeholder{PlaceholderName, PlaceholderAge, PlaceholderDetails, PlaceholderDate}
}

// Values maps recognised placeholders to replacement text. A key present with
// an empty string counts as supplied and removes the token. PlaceholderDate is
// always resolved from the clock; a caller supplied date is ignored.
type Values map[Placeholder]string

// FallbackValues returns the values used by the fallback render path: name,
// age (possibly empty) and details from the submitted form.
func FallbackValues(in model.FormInput) Values {
	return Values{
		PlaceholderName:    in.Name,
		PlaceholderAge:     in.Age,
		PlaceholderDetails: in.Details,
	}
}

// Option configures a Substituter.
type Option func(*Substituter)

// WithClock overrides the time source used for [Date].
func WithClock(now func() time.Time) Option {
	return func(s *Substituter) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDateLayout overrides the time layout used for [Date].
func WithDateLayout(layout string) Option {
	return func(s *Substituter) {
		if strings.TrimSpace(layout) != "" {
			s.layout = layout
		}
	}
}

// Substituter replaces recognised placeholders in template bodies.
type Substituter struct {
	now    func() time.Time
	layout string
}

// NewSubstituter constructs a Substituter using the local clock and the
// default date layout unless overridden.
func NewSubstituter(options ...Option) *Substituter {
	s := &Substituter{
		now:    time.Now,
		layout: DefaultDateLayout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Render replaces every occurrence of each supplied placeholder in a single
// pass, so replacement text is never expanded again. Tokens without a value
// are left as-is.
func (s *Substituter) Render(tpl model.Template, values Values) string {
	if s == nil {
		s = NewSubstituter()
	}

	pairs := make([]string, 0, len(Placeholders())*2)
	for _, placeholder := range Placeholders() {
		if placeholder == PlaceholderDate {
			pairs = append(pairs, string(placeholder), s.Today())
			continue
		}
		value, ok := values[placeholder]
		if !ok {
			continue
		}
		pairs = append(pairs, string(placeholder), value)
	}
	return strings.NewReplacer(pairs...).Replace(tpl.Body)
}

// Today formats the clock's current local date.
func (s *Substituter) Today() string {
	return s.now().Format(s.layout)
}

// Render substitutes using a default Substituter.
func Render(tpl model.Template, values Values) string {
	return NewSubstituter().Render(tpl, values)
}

var bracketToken = regexp.MustCompile(`\[[^\[\]\r\n]+\]`)

// Unresolved returns the distinct bracket tokens remaining in text, in order
// of first appearance.
func Unresolved(text string) []string {
	matches := bracketToken.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		out = append(out, match)
	}
	return out
}
