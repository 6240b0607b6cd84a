package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-obituary/pkg/model"
)

// FixedClock returns a clock that always reports the given local date at noon.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	return func() time.Time { return at }
}

// GeneratorServer is an httptest server standing in for the remote obituary
// endpoint. It records every request it receives.
type GeneratorServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest captures what the generator endpoint received.
type RecordedRequest struct {
	Method      string
	ContentType string
	Form        url.Values
}

// Input decodes the recorded form values.
func (r RecordedRequest) Input() model.FormInput {
	return model.FormInputFromValues(r.Form)
}

// NewGeneratorServer starts a server that answers every request with status
// and body. The server is closed when the test finishes.
func NewGeneratorServer(t *testing.T, status int, body string) *GeneratorServer {
	t.Helper()

	srv := &GeneratorServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(payload))

		srv.mu.Lock()
		srv.requests = append(srv.requests, RecordedRequest{
			Method:      r.Method,
			ContentType: r.Header.Get("Content-Type"),
			Form:        form,
		})
		srv.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Requests returns a copy of the recorded requests.
func (s *GeneratorServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
