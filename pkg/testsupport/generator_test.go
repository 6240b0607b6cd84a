package testsupport_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-obituary/pkg/testsupport"
)

func TestGeneratorServerRecordsRequests(t *testing.T) {
	srv := testsupport.NewGeneratorServer(t, http.StatusOK, `{"success":true,"obituary":"<p>x</p>"}`)

	form := url.Values{"name": {"Ada"}, "details": {"Mathematician"}}
	resp, err := http.Post(srv.URL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	requests := srv.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	if requests[0].Method != http.MethodPost {
		t.Fatalf("unexpected method %q", requests[0].Method)
	}
	if got := requests[0].Input(); got.Name != "Ada" || got.Details != "Mathematician" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestFixedClock(t *testing.T) {
	clock := testsupport.FixedClock(2024, time.March, 9)
	if got := clock().Format("1/2/2006"); got != "3/9/2024" {
		t.Fatalf("unexpected date %q", got)
	}
}
