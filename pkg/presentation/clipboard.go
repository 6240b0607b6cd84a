package presentation

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const (
	CopySucceededMessage = "Obituary copied to clipboard!"
	CopyFailedMessage    = "Failed to copy text. Please try again."
)

// ErrClipboardUnavailable is returned when the platform has no clipboard
// utility available.
var ErrClipboardUnavailable = errors.New("presentation: clipboard unavailable")

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(text string) error

// WriteText calls f.
func (f ClipboardFunc) WriteText(text string) error {
	return f(text)
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteText implements Clipboard.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("presentation: write clipboard: %w", err)
	}
	return nil
}

// Acknowledgement is the message reported back to the user after an action.
type Acknowledgement struct {
	OK      bool
	Message string
	Err     error
}

// Copy writes the plain text of markup to cb. Failures are reported, not
// retried.
func Copy(cb Clipboard, markup string) Acknowledgement {
	if cb == nil {
		return Acknowledgement{Message: CopyFailedMessage, Err: ErrClipboardUnavailable}
	}
	if err := cb.WriteText(PlainText(markup)); err != nil {
		return Acknowledgement{Message: CopyFailedMessage, Err: err}
	}
	return Acknowledgement{OK: true, Message: CopySucceededMessage}
}
