// Package executor turns generated answers into commands and runs them.
package executor

import "context"

// CommandRunner defines the interface for running a decomposed command.
// This interface enables dependency injection and easier testing.
type CommandRunner interface {
	// Run spawns the command, waits for it and returns its exit code
	Run(ctx context.Context, cmd Command) (int, error)
}

// Ensure concrete types implement the interfaces
var _ CommandRunner = (*Runner)(nil)
