// Package presentation collects the user-facing conveniences around the
// preview: the single-open FAQ accordion, plain-text extraction of rendered
// markup, clipboard copy and the obituary.txt download.
package presentation

// PreviewPlaceholderHTML is shown in the preview region before a submission
// and after a reset.
const PreviewPlaceholderHTML = "<p>Your generated obituary will appear here. Our AI will create a respectful and personalized tribute based on the information you provide.</p>"
