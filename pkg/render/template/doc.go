// Package template defines the renderer-agnostic template interface used by
// the HTML page renderer. Engines live in subpackages.
package template
