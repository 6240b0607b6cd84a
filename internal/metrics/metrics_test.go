package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-obituary/pkg/generator"
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
)

type stubGenerator struct {
	err error
}

func (s stubGenerator) Submit(context.Context, model.FormInput) (model.GeneratedContent, error) {
	if s.err != nil {
		return model.GeneratedContent{}, s.err
	}
	return model.GeneratedContent{HTML: "<p>ok</p>"}, nil
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		name string
		snap orchestrator.Snapshot
		err  error
		want string
	}{
		{"remote", orchestrator.Snapshot{Preview: model.GeneratedContent{HTML: "<p>x</p>"}}, nil, OutcomeRemote},
		{"fallback", orchestrator.Snapshot{Preview: model.GeneratedContent{HTML: "<p>x</p>", Fallback: true}}, nil, OutcomeFallback},
		{"invalid", orchestrator.Snapshot{}, &model.ValidationError{Fields: []string{"name"}}, OutcomeInvalid},
		{"error", orchestrator.Snapshot{}, errors.New("context canceled"), OutcomeError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Outcome(tc.snap, tc.err); got != tc.want {
				t.Fatalf("Outcome = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecordSubmission_NormalisesTone(t *testing.T) {
	m := New()
	snap := orchestrator.Snapshot{
		Input:   model.FormInput{Tone: "sarcastic"},
		Preview: model.GeneratedContent{HTML: "<p>x</p>", Fallback: true},
	}
	m.RecordSubmission(snap, nil)
	m.RecordSubmission(snap, nil)

	if got := testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeFallback, "heartfelt")); got != 2 {
		t.Fatalf("expected 2 fallback submissions, got %v", got)
	}
}

func TestInstrumentGenerator_LabelsByFailureKind(t *testing.T) {
	m := New()

	ok := m.InstrumentGenerator(stubGenerator{})
	if _, err := ok.Submit(context.Background(), model.FormInput{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	failing := m.InstrumentGenerator(stubGenerator{err: &generator.Failure{Kind: generator.KindStatus, Status: 502}})
	if _, err := failing.Submit(context.Background(), model.FormInput{}); err == nil {
		t.Fatalf("expected failure to pass through")
	}

	if got := testutil.ToFloat64(m.generatorCalls.WithLabelValues("success")); got != 1 {
		t.Fatalf("success calls = %v", got)
	}
	if got := testutil.ToFloat64(m.generatorCalls.WithLabelValues(string(generator.KindStatus))); got != 1 {
		t.Fatalf("status failures = %v", got)
	}
}

func TestInstrumentGenerator_NilStaysNil(t *testing.T) {
	if New().InstrumentGenerator(nil) != nil {
		t.Fatalf("nil generator must stay nil")
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.RecordDownload()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "obituary_downloads_total 1") {
		t.Fatalf("expected download counter in output")
	}
}
