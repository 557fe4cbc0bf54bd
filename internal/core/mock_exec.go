package core

import (
	"context"
	"errors"
)

// MockCommandRunner is a CommandRunner for tests. Every command is recorded
// in Calls; RunFn decides the outcome.
type MockCommandRunner struct {
	RunFn func(ctx context.Context, cmd Command) (Result, error)
	Calls []Command
}

var _ CommandRunner = (*MockCommandRunner)(nil)

// Run implements CommandRunner.
func (m *MockCommandRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	m.Calls = append(m.Calls, cmd)
	if m.RunFn != nil {
		return m.RunFn(ctx, cmd)
	}
	return Result{}, nil
}

// CallStrings returns the recorded commands rendered with Command.String.
func (m *MockCommandRunner) CallStrings() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.String()
	}
	return out
}

// ExitFailure builds the error a runner returns for a non-zero exit.
func ExitFailure(cmd Command, code int, stdout, stderr string) *CommandError {
	return &CommandError{
		Kind:     KindExit,
		Command:  cmd,
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      errors.New("exit status"),
	}
}

// SpawnFailure builds the error a runner returns when a binary cannot start.
func SpawnFailure(cmd Command, err error) *CommandError {
	return &CommandError{Kind: KindSpawn, Command: cmd, Err: err}
}
