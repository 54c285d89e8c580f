// Package clipboard copies answers to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	atotto "github.com/atotto/clipboard"
)

var (
	// ErrUnsupported means no clipboard utility is available
	ErrUnsupported = errors.New("clipboard is not supported on this system")
	// ErrMismatch means the clipboard did not hold the text after writing
	ErrMismatch = errors.New("clipboard content does not match the copied text")
)

// Clipboard defines the interface for a text clipboard.
// This interface enables dependency injection and easier testing.
type Clipboard interface {
	Supported() bool
	WriteAll(text string) error
	ReadAll() (string, error)
}

// Ensure concrete types implement the interfaces
var _ Clipboard = System{}

// System is the desktop clipboard (pbcopy, xclip, xsel, wl-copy or the
// Windows API, whichever is available)
type System struct{}

// Supported reports whether a clipboard utility was found
func (System) Supported() bool {
	return !atotto.Unsupported
}

// WriteAll replaces the clipboard contents
func (System) WriteAll(text string) error {
	return atotto.WriteAll(text)
}

// ReadAll returns the clipboard contents
func (System) ReadAll() (string, error) {
	return atotto.ReadAll()
}

// Copy writes text and reads it back to verify the write
func Copy(cb Clipboard, text string) error {
	if !cb.Supported() {
		return ErrUnsupported
	}
	if err := cb.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	got, err := cb.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	if got != text {
		return ErrMismatch
	}
	return nil
}
