package model

import (
	"sort"
	"strings"
)

// RequiredFieldsMessage is surfaced when name or details are missing.
const RequiredFieldsMessage = "Please fill in all required fields"

// ValidationError lists the required fields that were left empty. It blocks
// the submission before any network call is attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "model: validation failed"
	}
	return "model: missing required fields: " + strings.Join(e.Fields, ", ")
}

// Message returns the user-facing text for the error region.
func (e *ValidationError) Message() string {
	return RequiredFieldsMessage
}

// Validate checks the required fields of a FormInput. Whitespace-only values
// count as empty.
func Validate(in FormInput) error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Details) == "" {
		missing = append(missing, "details")
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &ValidationError{Fields: missing}
}
