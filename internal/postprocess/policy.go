// Package postprocess decides what happens to a generated answer.
package postprocess

import "strings"

// Action is what the CLI does with an answer
type Action int

const (
	// Confirm asks the user, then runs the answer as a command
	Confirm Action = iota
	// Copy puts the answer on the clipboard
	Copy
	// Out prints the answer
	Out
)

// String returns the configuration name of the action
func (a Action) String() string {
	switch a {
	case Copy:
		return "copy"
	case Out:
		return "out"
	default:
		return "confirm"
	}
}

// ParseAction maps a configured value to an action.
// Only the exact names "confirm", "copy" and "out" are recognized;
// anything else, including an empty value, means Confirm.
func ParseAction(value string) Action {
	switch value {
	case "copy":
		return Copy
	case "out":
		return Out
	default:
		return Confirm
	}
}

// Policy holds the configured default action
type Policy struct {
	Default Action
}

// NewPolicy creates a policy from the raw configured default
func NewPolicy(value string) Policy {
	return Policy{Default: ParseAction(value)}
}

// Decide returns the action for answer.
// Answers that reference a variable or start with "export" are copied
// instead of executed, but only when the default is Confirm.
func (p Policy) Decide(answer string) Action {
	if p.Default == Confirm && looksLikeShellState(answer) {
		return Copy
	}
	return p.Default
}

func looksLikeShellState(answer string) bool {
	return strings.Contains(answer, "$") || strings.HasPrefix(answer, "export")
}
