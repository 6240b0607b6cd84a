package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-obituary/internal/metrics"
)

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := rec.Header().Get(RequestIDHeader); !strings.HasPrefix(got, "req_") || len(got) != len("req_")+16 {
		t.Fatalf("expected generated request id, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "upstream-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "upstream-42" {
		t.Fatalf("expected upstream id to be kept, got %q", got)
	}
}

func TestMetricsRoute(t *testing.T) {
	m := metrics.New()
	remoteOpt, _ := withRemote(t, http.StatusInternalServerError, `{}`)
	handler := newTestServer(t, WithMetrics(m), remoteOpt)

	if rec := postForm(handler, "/generate", validForm(), "application/json"); rec.Code != http.StatusOK {
		t.Fatalf("generate status %d", rec.Code)
	}
	if rec := postForm(handler, "/generate", url.Values{}, "application/json"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid generate status %d", rec.Code)
	}
	if rec := postForm(handler, "/download", url.Values{"content": {"<p>x</p>"}}, ""); rec.Code != http.StatusOK {
		t.Fatalf("download status %d", rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`obituary_submissions_total{outcome="fallback",tone="formal"} 1`,
		`obituary_submissions_total{outcome="invalid",tone="heartfelt"} 1`,
		`obituary_generator_calls_total{result="status"} 1`,
		`obituary_downloads_total 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, body)
		}
	}
}

func TestMetricsRoute_DisabledByDefault(t *testing.T) {
	handler := newTestServer(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics, got %d", rec.Code)
	}
}
