package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	// PageTemplate is the template rendered for every page.
	PageTemplate = "page.tmpl"
	// StylesheetName and RuntimeScriptName are the runtime asset file names
	// the page links when RenderOptions.RuntimePrefix is set.
	StylesheetName    = "obituary.css"
	RuntimeScriptName = "obituary.js"
)

// TemplatesFS exposes the embedded page templates so callers can copy and
// customise them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
