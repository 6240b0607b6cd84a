package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/render"
)

func TestRender_PlainTextPage(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	snap := orchestrator.Snapshot{
		Phase:          orchestrator.PhaseSuccess,
		Notice:         &orchestrator.Notice{Message: orchestrator.FallbackNotice, Severity: orchestrator.SeverityInfo},
		Preview:        model.GeneratedContent{HTML: "<h3>Ada</h3><p>Remembered &amp; loved</p>"},
		SuccessVisible: true,
	}
	page := render.NewPage(snap)
	page.FAQ.Toggle(0)

	out, err := r.Render(context.Background(), page, render.RenderOptions{Title: "Obituary"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		"Obituary\n\n",
		DefaultTheme.InfoPrefix + orchestrator.FallbackNotice,
		"Obituary ready.",
		"Ada\n\nRemembered & loved",
		"Q: " + page.FAQ.Items()[0].Question,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if r.ContentType() != "text/plain; charset=utf-8" || r.Name() != "tui" {
		t.Fatalf("unexpected renderer metadata")
	}
}

func TestRender_ErrorNoticeUsesErrorPrefix(t *testing.T) {
	r, _ := New(WithPromptDriver(&stubDriver{}), WithTheme(Theme{ErrorPrefix: "ERR ", InfoPrefix: "INFO "}))

	snap := orchestrator.IdleSnapshot()
	snap.Phase = orchestrator.PhaseError
	snap.Notice = &orchestrator.Notice{Message: model.RequiredFieldsMessage, Severity: orchestrator.SeverityError}

	out, err := r.Render(context.Background(), render.NewPage(snap), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(out), "ERR "+model.RequiredFieldsMessage) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCollect_DefaultToneIndex(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "36"},
		textAreas: []string{"Details"},
		selectIdx: []int{3},
	}
	r, _ := New(WithPromptDriver(driver))

	in, err := r.Collect(context.Background(), model.FormInput{Tone: "Celebratory"}, render.ErrorMapping{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if in.Name != "Ada" || in.Age != "36" || in.Details != "Details" || in.Tone != model.ToneReligious {
		t.Fatalf("unexpected input %+v", in)
	}
	if got := driver.selectCfgs[0].DefaultIndex; got != 2 {
		t.Fatalf("expected celebratory default index 2, got %d", got)
	}
}
