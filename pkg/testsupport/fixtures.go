package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obituary/pkg/model"
)

// MustLoadFormInput loads a JSON fixture into a FormInput.
func MustLoadFormInput(t *testing.T, path string) model.FormInput {
	t.Helper()

	in, err := LoadFormInput(path)
	if err != nil {
		t.Fatalf("load form input: %v", err)
	}
	return in
}

// LoadFormInput reads a JSON fixture into a FormInput, returning an error for
// callers managing setup outside of *testing.T.
func LoadFormInput(path string) (model.FormInput, error) {
	if path == "" {
		return model.FormInput{}, errors.New("testsupport: form input path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormInput{}, fmt.Errorf("testsupport: read form input: %w", err)
	}
	var out model.FormInput
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormInput{}, fmt.Errorf("testsupport: unmarshal form input: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
