// Package display handles everything the CLI shows to the user.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/quocvuong92/gpt-cli/internal/executor"
)

// Output destinations. Tests replace them with buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	errorColor = color.New(color.FgRed)
	hintColor  = color.New(color.FgYellow)
	infoColor  = color.New(color.FgCyan)
)

var (
	commandStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	cautionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	destructiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShowError prints an error message in red on stderr
func ShowError(msg string) {
	_, _ = errorColor.Fprintln(Stderr, msg)
}

// ShowHint prints a follow-up suggestion in yellow on stderr
func ShowHint(msg string) {
	_, _ = hintColor.Fprintln(Stderr, msg)
}

// ShowInfo prints an informational line on stdout
func ShowInfo(msg string) {
	_, _ = infoColor.Fprintln(Stdout, msg)
}

// ShowContent prints the answer as is
func ShowContent(content string) {
	fmt.Fprintln(Stdout, content)
}

// ShowCopied confirms a clipboard write
func ShowCopied(text string) {
	fmt.Fprintf(Stdout, "Text '%s' was copied to your clipboard\n", text)
}

// FormatCommand builds the confirmation question for answer.
// Commands that are not read-only get a risk note under the command.
func FormatCommand(answer string, risk executor.Risk) string {
	question := fmt.Sprintf("Execute.:\n\n%s\n\n", commandStyle.Render(answer))
	switch risk {
	case executor.Modifying:
		question += cautionStyle.Render("Note: "+risk.String()) + "\n\n"
	case executor.Destructive:
		question += destructiveStyle.Render("Warning: "+risk.String()) + "\n\n"
	}
	return question
}
