package render

import "strings"

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the page state.
type RenderOptions struct {
	// Hidden carries extra hidden inputs emitted inside the generate form, for
	// example a CSRF token supplied by the hosting application.
	Hidden map[string]string
	// RuntimePrefix is the URL prefix the runtime CSS/JS assets are mounted
	// under. Empty disables the runtime includes.
	RuntimePrefix string
	// Title overrides the page title.
	Title string
	// BasePath is where the page handlers are mounted. Empty means "/".
	BasePath string
}

// Route joins the base path with a handler name ("" for the page itself).
func (o RenderOptions) Route(name string) string {
	base := strings.TrimRight(strings.TrimSpace(o.BasePath), "/")
	return base + "/" + strings.TrimLeft(name, "/")
}
