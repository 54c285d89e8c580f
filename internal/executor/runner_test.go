package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newBufferedRunner(stdin string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Runner{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestRunner_Success(t *testing.T) {
	r, stdout, _ := newBufferedRunner("")

	code, err := r.Run(context.Background(), Decompose("echo hello world"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("stdout = %q, want %q", got, "hello world\n")
	}
}

func TestRunner_Pipeline(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	r, stdout, _ := newBufferedRunner("")

	code, err := r.Run(context.Background(), Decompose("echo hello | tr a-z A-Z"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if got := stdout.String(); got != "HELLO\n" {
		t.Errorf("stdout = %q, want %q", got, "HELLO\n")
	}
}

func TestRunner_InheritsStdin(t *testing.T) {
	r, stdout, _ := newBufferedRunner("from stdin\n")

	if _, err := r.Run(context.Background(), Command{Program: "cat", Args: []string{}}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := stdout.String(); got != "from stdin\n" {
		t.Errorf("stdout = %q, want %q", got, "from stdin\n")
	}
}

func TestRunner_NonZeroExit(t *testing.T) {
	r, _, stderr := newBufferedRunner("")

	code, err := r.Run(context.Background(), Command{Program: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil for a non-zero exit", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("stderr = %q, want %q", got, "oops\n")
	}
}

func TestRunner_ProgramNotFound(t *testing.T) {
	r, _, _ := newBufferedRunner("")

	code, err := r.Run(context.Background(), Command{Program: "definitely-not-a-real-program-xyz", Args: []string{}})
	if err == nil {
		t.Fatal("Run() should fail for a missing program")
	}
	if code != -1 {
		t.Errorf("exit code = %d, want -1", code)
	}
}

func TestRunner_EmptyCommand(t *testing.T) {
	r, _, _ := newBufferedRunner("")

	_, err := r.Run(context.Background(), Decompose(""))
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Run() error = %v, want ErrEmptyCommand", err)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	r, _, _ := newBufferedRunner("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, Command{Program: "sleep", Args: []string{"5"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
