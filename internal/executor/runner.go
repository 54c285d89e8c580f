package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// ErrEmptyCommand is returned when there is no program to run
var ErrEmptyCommand = errors.New("empty command")

// Runner spawns commands as child processes attached to the caller's
// standard streams.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a runner that inherits the process stdio
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts cmd without a shell and blocks until it exits.
// A non-zero exit status is reported through the exit code, not the error.
// The error is set only when the process could not be started or waited on.
func (r *Runner) Run(ctx context.Context, cmd Command) (int, error) {
	if cmd.Program == "" {
		return -1, ErrEmptyCommand
	}

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	logrus.WithFields(logrus.Fields{
		"program": cmd.Program,
		"args":    len(cmd.Args),
	}).Debug("Spawning command")

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logrus.WithField("exit_code", exitErr.ExitCode()).Debug("Command exited with non-zero status")
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to run %s: %w", cmd.Program, err)
}
