package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command describes an external process invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command line the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Result holds the captured output of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// ErrorKind distinguishes how a command failed.
type ErrorKind int

const (
	// KindExit means the process ran and exited with a non-zero status.
	KindExit ErrorKind = iota + 1

	// KindSpawn means the process could not be started at all.
	KindSpawn
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindExit:
		return "exit"
	case KindSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// CommandError is returned by a CommandRunner when a command fails.
type CommandError struct {
	Kind     ErrorKind
	Command  Command
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case KindExit:
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	case KindSpawn:
		return fmt.Sprintf("%s: failed to start: %v", e.Command, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the most useful captured output: stderr when present,
// otherwise stdout.
func (e *CommandError) Diagnostic() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(e.Stdout)
}

// CommandRunner executes external commands and waits for them to finish.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// OSCommandRunner implements CommandRunner with os/exec.
type OSCommandRunner struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSCommandRunner creates a runner backed by exec.CommandContext.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{
		execCommand: exec.CommandContext,
	}
}

var _ CommandRunner = (*OSCommandRunner)(nil)

// Run starts the command, captures its output and blocks until it exits.
// There is no timeout; cancelling ctx kills the process.
func (r *OSCommandRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := r.execCommand(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s: %w", c, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, &CommandError{
			Kind:     KindExit,
			Command:  c,
			ExitCode: exitErr.ExitCode(),
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			Err:      err,
		}
	}
	return res, &CommandError{Kind: KindSpawn, Command: c, Err: err}
}

// TracingRunner calls Trace before delegating each command to Runner.
type TracingRunner struct {
	Runner CommandRunner
	Trace  func(Command)
}

// NewTracingRunner wraps runner so every command is reported to trace first.
func NewTracingRunner(runner CommandRunner, trace func(Command)) *TracingRunner {
	return &TracingRunner{Runner: runner, Trace: trace}
}

func (t *TracingRunner) Run(ctx context.Context, c Command) (Result, error) {
	if t.Trace != nil {
		t.Trace(c)
	}
	return t.Runner.Run(ctx, c)
}

// IsExitError reports whether err is a CommandError of KindExit.
func IsExitError(err error) (*CommandError, bool) {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Kind == KindExit {
		return cmdErr, true
	}
	return nil, false
}
