package model

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTone(t *testing.T) {
	cases := []struct {
		raw  string
		want Tone
		ok   bool
	}{
		{raw: "formal", want: ToneFormal, ok: true},
		{raw: "  Celebratory ", want: ToneCelebratory, ok: true},
		{raw: "RELIGIOUS", want: ToneReligious, ok: true},
		{raw: "", ok: false},
		{raw: "sarcastic", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseTone(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseTone(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormInputValuesRoundTripKeys(t *testing.T) {
	in := FormInput{Name: "Ada Lovelace", Age: "36", Details: "Mathematician", Tone: ToneFormal}

	values := in.Values()
	want := url.Values{
		"name":    {"Ada Lovelace"},
		"age":     {"36"},
		"details": {"Mathematician"},
		"tone":    {"formal"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := FormInputFromValues(values); got != in {
		t.Fatalf("FormInputFromValues = %+v, want %+v", got, in)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(FormInput{Name: "Ada", Details: "x"}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	err := Validate(FormInput{Name: "  ", Age: "40"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if diff := cmp.Diff([]string{"details", "name"}, vErr.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if vErr.Message() != RequiredFieldsMessage {
		t.Fatalf("unexpected message %q", vErr.Message())
	}

	err = Validate(FormInput{Name: "Ada", Details: " \n\t"})
	if !errors.As(err, &vErr) {
		t.Fatalf("expected whitespace-only details to fail, got %v", err)
	}
	if diff := cmp.Diff([]string{"details"}, vErr.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
