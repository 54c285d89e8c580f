package display

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr while waiting for the API.
// It does nothing when stderr is not a terminal so pipes stay clean.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with msg after the animation
func NewSpinner(msg string) *Spinner {
	if !IsTerminal(os.Stderr) {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr),
		spinner.WithHiddenCursor(true),
	)
	s.Suffix = " " + msg
	return &Spinner{s: s}
}

// Start begins the animation
func (sp *Spinner) Start() {
	if sp.s != nil {
		sp.s.Start()
	}
}

// Stop ends the animation and clears the line
func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}
