package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/render"
)

func TestMapSubmissionError_Validation(t *testing.T) {
	err := fmt.Errorf("submit: %w", model.Validate(model.FormInput{Age: "80"}))

	got := render.MapSubmissionError(err)
	want := render.ErrorMapping{
		Fields: map[string][]string{
			"details": {render.FieldRequiredMessage},
			"name":    {render.FieldRequiredMessage},
		},
		Form: []string{model.RequiredFieldsMessage},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if !got.Has("name") || got.Has("age") {
		t.Fatalf("unexpected Has results for %+v", got)
	}
}

func TestMapSubmissionError_Other(t *testing.T) {
	got := render.MapSubmissionError(errors.New("  boom  "))
	want := render.ErrorMapping{Form: []string{"boom"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestMapSubmissionError_Nil(t *testing.T) {
	if diff := cmp.Diff(render.ErrorMapping{}, render.MapSubmissionError(nil)); diff != "" {
		t.Fatalf("expected empty mapping (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{" a ", "b"}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
