package vanilla

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func TestResolveTheme_MergesVariantTokens(t *testing.T) {
	cfg := ResolveTheme(DefaultSelection("dark"))
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	if cfg.Theme != DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["paper"] != "#1f1c19" {
		t.Fatalf("variant token not applied, got %s", cfg.Tokens["paper"])
	}
	if cfg.Tokens["accent"] != "#6b4f3a" {
		t.Fatalf("base token lost, got %s", cfg.Tokens["accent"])
	}
	if cfg.CSSVars["--paper"] != "#1f1c19" {
		t.Fatalf("css vars not derived from tokens, got %s", cfg.CSSVars["--paper"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/runtime/obituary.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestResolveTheme_UnknownVariantUsesBase(t *testing.T) {
	base := ResolveTheme(DefaultSelection(""))
	unknown := ResolveTheme(DefaultSelection("sepia"))
	if diff := cmp.Diff(base.Tokens, unknown.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-base +unknown):\n%s", diff)
	}
}

func TestResolveTheme_Nil(t *testing.T) {
	if ResolveTheme(nil) != nil {
		t.Fatalf("expected nil config for nil selection")
	}
	if ResolveTheme(&theme.Selection{Theme: "x"}) != nil {
		t.Fatalf("expected nil config without manifest")
	}
}

func TestCSSVarsStyleSorted(t *testing.T) {
	got := cssVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	want := ":root {\n  --a: 1;\n  --b: 2;\n}"
	if got != want {
		t.Fatalf("unexpected style\nwant: %q\n got: %q", want, got)
	}
}
