package tui

// Theme captures optional formatting hints applied when printing messages.
// Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
	Divider     string
}

// DefaultTheme is applied when no theme option is given.
var DefaultTheme = Theme{
	InfoPrefix:  "i ",
	ErrorPrefix: "! ",
	Divider:     "----------------------------------------",
}

// Option configures the terminal renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
