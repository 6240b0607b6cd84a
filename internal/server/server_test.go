package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-obituary/pkg/generator"
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/render"
	"github.com/goliatone/go-obituary/pkg/testsupport"
)

func newTestServer(t *testing.T, options ...Option) http.Handler {
	t.Helper()
	options = append([]Option{WithLogger(log.New(io.Discard, "", 0))}, options...)
	srv, err := New(options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Handler()
}

func withRemote(t *testing.T, status int, body string) (Option, *testsupport.GeneratorServer) {
	t.Helper()
	remote := testsupport.NewGeneratorServer(t, status, body)
	client, err := generator.New(remote.URL + "/exec")
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return WithGenerator(client), remote
}

func postForm(handler http.Handler, target string, form url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return model.FormInput{Name: "Ada Lovelace", Age: "36", Details: "Mathematician", Tone: model.ToneFormal}.Values()
}

func TestPage(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(rec.Body.String(), "Your generated obituary will appear here.") {
		t.Fatalf("expected placeholder preview")
	}
}

func TestPage_FAQToggle(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?faq=1", nil))
	if !strings.Contains(rec.Body.String(), `class="faq-item active" data-index="1"`) {
		t.Fatalf("expected second FAQ item open")
	}
}

func TestPage_NotFoundAndMethod(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("unexpected Allow header %q", rec.Header().Get("Allow"))
	}
}

func TestGenerate_ValidationSkipsRemote(t *testing.T) {
	opt, remote := withRemote(t, http.StatusOK, `{"success":true,"obituary":"<p>x</p>"}`)
	handler := newTestServer(t, opt)

	rec := postForm(handler, "/generate", url.Values{"name": {"  "}, "details": {""}}, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), model.RequiredFieldsMessage) {
		t.Fatalf("expected required fields message")
	}
	if n := len(remote.Requests()); n != 0 {
		t.Fatalf("expected no remote call, got %d", n)
	}
}

func TestGenerate_RemoteSuccessHTML(t *testing.T) {
	opt, remote := withRemote(t, http.StatusOK, `{"success":true,"obituary":"<p>Remote tribute</p>"}`)
	handler := newTestServer(t, opt)

	rec := postForm(handler, "/generate", validForm(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<p>Remote tribute</p>") {
		t.Fatalf("expected remote content in page")
	}
	if strings.Contains(body, orchestrator.FallbackNotice) {
		t.Fatalf("did not expect fallback notice")
	}

	requests := remote.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one remote call, got %d", len(requests))
	}
	if got := requests[0].Input(); got.Name != "Ada Lovelace" || got.Tone != model.ToneFormal {
		t.Fatalf("unexpected forwarded input %+v", got)
	}
}

func TestGenerate_FallbackJSON(t *testing.T) {
	opt, _ := withRemote(t, http.StatusInternalServerError, `{"success":false}`)
	handler := newTestServer(t, opt)

	rec := postForm(handler, "/generate", validForm(), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.State != orchestrator.PhaseSuccess || !resp.Fallback {
		t.Fatalf("expected fallback success, got %+v", resp)
	}
	if resp.Notice == nil || resp.Notice.Message != orchestrator.FallbackNotice || resp.Notice.Severity != orchestrator.SeverityInfo {
		t.Fatalf("unexpected notice %+v", resp.Notice)
	}
	if !strings.Contains(resp.Obituary, "Obituary of Ada Lovelace") {
		t.Fatalf("expected formal fallback, got %q", resp.Obituary)
	}
}

func TestGenerate_JSONValidationErrors(t *testing.T) {
	handler := newTestServer(t)

	rec := postForm(handler, "/generate?format=json", url.Values{"name": {"Ada"}}, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.State != orchestrator.PhaseError {
		t.Fatalf("expected error state, got %q", resp.State)
	}
	if got := resp.Errors["details"]; len(got) != 1 || got[0] != render.FieldRequiredMessage {
		t.Fatalf("unexpected field errors %v", resp.Errors)
	}
}

func TestGenerate_SanitisesRemoteMarkup(t *testing.T) {
	opt, _ := withRemote(t, http.StatusOK, `{"success":true,"obituary":"<p>Kept</p><script>alert(1)</script>"}`)
	handler := newTestServer(t, opt)

	rec := postForm(handler, "/generate", validForm(), "application/json")
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Obituary != "<p>Kept</p>" {
		t.Fatalf("unexpected obituary %q", resp.Obituary)
	}
}

func TestReset(t *testing.T) {
	handler := newTestServer(t)

	rec := postForm(handler, "/reset", nil, "application/json")
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.State != orchestrator.PhaseIdle || resp.Focus != orchestrator.FocusForm {
		t.Fatalf("unexpected reset response %+v", resp)
	}
	if resp.Notice != nil {
		t.Fatalf("expected notice cleared")
	}
}

func TestDownload(t *testing.T) {
	handler := newTestServer(t)

	rec := postForm(handler, "/download", url.Values{"content": {"<h3>Ada</h3><p>Remembered</p>"}}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="obituary.txt"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "Ada\n\nRemembered" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	rec = postForm(handler, "/download", url.Values{}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without content, got %d", rec.Code)
	}
}

func TestHealthzAndRuntime(t *testing.T) {
	assets := fstest.MapFS{"obituary.js": {Data: []byte("// runtime")}}
	handler := newTestServer(t, WithRuntimeAssets(assets), WithRenderOptions(render.RenderOptions{BasePath: "/obituary"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/obituary/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/obituary/runtime/obituary.js", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "// runtime" {
		t.Fatalf("unexpected runtime response %d %q", rec.Code, rec.Body.String())
	}
}
