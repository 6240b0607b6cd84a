package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	previewPolicyOnce sync.Once
	previewPolicy     *bluemonday.Policy
)

// SanitizePreview strips scripts, event handlers and unknown markup from
// generated content while keeping the headings, paragraphs and emphasis an
// obituary uses.
func SanitizePreview(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(previewSanitizer().Sanitize(trimmed))
}

func previewSanitizer() *bluemonday.Policy {
	previewPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("p", "h2", "h3", "h4", "span", "div", "blockquote")
		previewPolicy = policy
	})
	return previewPolicy
}
