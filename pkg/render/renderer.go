package render

import "context"

// Renderer converts a Page into a byte representation (HTML for browsers,
// plain text for terminals).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
