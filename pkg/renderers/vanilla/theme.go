package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the manifest returned by DefaultManifest.
const DefaultThemeName = "obituary"

// DefaultManifest describes the built-in look of the page. The "dark" variant
// overrides the palette tokens.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"ink":          "#2d2a26",
			"paper":        "#fbf8f3",
			"accent":       "#6b4f3a",
			"muted":        "#8a8179",
			"notice-info":  "#2f5d8a",
			"notice-error": "#a23b2a",
			"font-body":    "Georgia, 'Times New Roman', serif",
		},
		Assets: theme.Assets{
			Prefix: "/runtime",
			Files: map[string]string{
				"stylesheet": StylesheetName,
				"script":     RuntimeScriptName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"ink":   "#ece6dc",
					"paper": "#1f1c19",
					"muted": "#a49a90",
				},
			},
		},
	}
}

// DefaultSelection selects variant of the default manifest. Unknown variants
// resolve to the base tokens.
func DefaultSelection(variant string) *theme.Selection {
	return &theme.Selection{
		Theme:    DefaultThemeName,
		Variant:  strings.TrimSpace(variant),
		Manifest: DefaultManifest(),
	}
}

// ResolveTheme flattens a selection into renderer configuration: manifest
// tokens merged with the selected variant, CSS variables derived from the
// tokens and an asset resolver honouring the manifest prefix.
func ResolveTheme(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := copyStringMap(manifest.Tokens)
	partials := copyStringMap(manifest.Templates)
	assets := copyStringMap(manifest.Assets.Files)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStringMap(tokens, variant.Tokens)
		partials = mergeStringMap(partials, variant.Templates)
		assets = mergeStringMap(assets, variant.Assets.Files)
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	prefix := strings.TrimRight(manifest.Assets.Prefix, "/")
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return prefix + "/" + file
		},
	}
}

type rendererTheme struct {
	Name         string
	Variant      string
	CSSVars      map[string]string
	CSSVarsStyle string
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(base, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
