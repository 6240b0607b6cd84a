package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-obituary/pkg/model"
)

// FieldRequiredMessage is attached to each empty required field.
const FieldRequiredMessage = "This field is required"

// ErrorMapping splits a submission error into field-level and form-level
// messages keyed by the form input names (name, details, ...).
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Has reports whether field carries at least one message.
func (m ErrorMapping) Has(field string) bool {
	return len(m.Fields[field]) > 0
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapSubmissionError converts the error returned by an orchestrator submit
// into messages renderers can attach to inputs. Validation errors map to the
// missing fields; anything else becomes a form-level message.
func MapSubmissionError(err error) ErrorMapping {
	var mapping ErrorMapping
	if err == nil {
		return mapping
	}

	var validation *model.ValidationError
	if errors.As(err, &validation) {
		for _, field := range validation.Fields {
			name := strings.TrimSpace(field)
			if name == "" {
				continue
			}
			if mapping.Fields == nil {
				mapping.Fields = make(map[string][]string)
			}
			mapping.Fields[name] = append(mapping.Fields[name], FieldRequiredMessage)
		}
		mapping.Form = MergeFormErrors(mapping.Form, validation.Message())
		return mapping
	}

	mapping.Form = MergeFormErrors(nil, err.Error())
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
