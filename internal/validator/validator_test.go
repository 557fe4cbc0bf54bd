package validator

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/printer"
	"github.com/pkgrel/pkgrel/internal/registry"
)

// scriptedPrompter returns answers in order and counts prompts.
type scriptedPrompter struct {
	answers []string
	calls   int
	err     error
}

func (p *scriptedPrompter) InputVersion(_ context.Context, _ discovery.Package) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	i := p.calls
	p.calls++
	if i >= len(p.answers) {
		return p.answers[len(p.answers)-1], nil
	}
	return p.answers[i], nil
}

// collidingRegistry reports the first n queries as published.
func collidingRegistry(n int) *registry.MockRegistry {
	reg := &registry.MockRegistry{}
	reg.PublishedFn = func(_ context.Context, _, _ string) (bool, error) {
		return len(reg.Queries) <= n, nil
	}
	return reg
}

var foo = discovery.Package{Name: "foo", Version: "1.0.0", Dir: "/packages/foo"}

func quiet(t *testing.T) {
	t.Helper()
	prev := printer.SetOutput(io.Discard)
	t.Cleanup(func() { printer.SetOutput(prev) })
}

func TestResolve_AcceptsFirstFreeVersion(t *testing.T) {
	quiet(t)
	reg := collidingRegistry(0)
	p := &scriptedPrompter{answers: []string{"1.0.1"}}

	got, err := New(reg, p).Resolve(context.Background(), foo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Candidate != "1.0.1" || got.Count != 0 {
		t.Errorf("Resolve() = %+v, want candidate 1.0.1 at attempt 0", got)
	}
	if len(reg.Queries) != 1 || reg.Queries[0] != "foo@1.0.1" {
		t.Errorf("Queries = %v, want [foo@1.0.1]", reg.Queries)
	}
}

func TestResolve_CollidesTwiceThenAccepts(t *testing.T) {
	quiet(t)
	reg := collidingRegistry(2)
	p := &scriptedPrompter{answers: []string{"1.0.0", "1.0.1", "1.0.2"}}

	got, err := New(reg, p).Resolve(context.Background(), foo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Candidate != "1.0.2" {
		t.Errorf("Candidate = %q, want %q", got.Candidate, "1.0.2")
	}
	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if p.calls != 3 {
		t.Errorf("prompted %d times, want 3", p.calls)
	}
}

func TestResolve_AcceptsOnLastAllowedAttempt(t *testing.T) {
	quiet(t)
	reg := collidingRegistry(3)
	p := &scriptedPrompter{answers: []string{"1.0.0", "1.0.1", "1.0.2", "1.0.3"}}

	got, err := New(reg, p).Resolve(context.Background(), foo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Count != DefaultMaxTries || got.Candidate != "1.0.3" {
		t.Errorf("Resolve() = %+v, want 1.0.3 at attempt %d", got, DefaultMaxTries)
	}
}

func TestResolve_Exhausted(t *testing.T) {
	quiet(t)
	reg := collidingRegistry(100)
	p := &scriptedPrompter{answers: []string{"1.0.0", "1.0.1", "1.0.2", "1.0.3", "1.0.4"}}

	_, err := New(reg, p).Resolve(context.Background(), foo)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %T: %v", err, err)
	}
	if exhausted.Version != "1.0.3" {
		t.Errorf("Version = %q, want the last colliding version 1.0.3", exhausted.Version)
	}
	if exhausted.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", exhausted.Attempts)
	}
	if len(reg.Queries) != 4 {
		t.Errorf("registry queried %d times, want 4", len(reg.Queries))
	}
}

func TestResolve_MaxTriesZero(t *testing.T) {
	quiet(t)
	reg := collidingRegistry(1)
	p := &scriptedPrompter{answers: []string{"1.0.0", "1.0.1"}}

	_, err := New(reg, p, WithMaxTries(0)).Resolve(context.Background(), foo)

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %v", err)
	}
	if p.calls != 1 {
		t.Errorf("prompted %d times, want 1", p.calls)
	}
}

func TestResolve_RegistryErrorIsFatal(t *testing.T) {
	quiet(t)
	queryErr := errors.New("403 Forbidden")
	reg := &registry.MockRegistry{
		PublishedFn: func(_ context.Context, _, _ string) (bool, error) {
			return false, queryErr
		},
	}
	p := &scriptedPrompter{answers: []string{"1.0.1"}}

	_, err := New(reg, p).Resolve(context.Background(), foo)
	if !errors.Is(err, queryErr) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if p.calls != 1 {
		t.Errorf("prompted %d times, want 1 (no retry on query errors)", p.calls)
	}
}

func TestResolve_PrompterError(t *testing.T) {
	quiet(t)
	promptErr := errors.New("interrupted")
	reg := &registry.MockRegistry{}

	_, err := New(reg, &scriptedPrompter{err: promptErr}).Resolve(context.Background(), foo)
	if !errors.Is(err, promptErr) {
		t.Fatalf("expected prompter error, got %v", err)
	}
	if len(reg.Queries) != 0 {
		t.Errorf("registry should not be queried, got %v", reg.Queries)
	}
}

func TestResolve_EmptyCandidateRejected(t *testing.T) {
	quiet(t)
	_, err := New(&registry.MockRegistry{}, &scriptedPrompter{answers: []string{"  "}}).Resolve(context.Background(), foo)
	if err == nil {
		t.Fatal("expected error for empty candidate")
	}
}

func TestResolve_RegistryCheckDisabled(t *testing.T) {
	quiet(t)
	reg := collidingRegistry(100)
	p := &scriptedPrompter{answers: []string{"1.0.0"}}

	got, err := New(reg, p, WithRegistryCheck(false)).Resolve(context.Background(), foo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Candidate != "1.0.0" {
		t.Errorf("Candidate = %q, want 1.0.0", got.Candidate)
	}
	if len(reg.Queries) != 0 {
		t.Errorf("registry should not be queried, got %v", reg.Queries)
	}
}

func TestWithMaxTries_IgnoresNegative(t *testing.T) {
	v := New(nil, nil, WithMaxTries(-1))
	if v.MaxTries() != DefaultMaxTries {
		t.Errorf("MaxTries() = %d, want %d", v.MaxTries(), DefaultMaxTries)
	}
}

func TestCandidateWarnings(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		candidate string
		want      int
	}{
		{"patch bump", "1.0.0", "1.0.1", 0},
		{"prerelease bump", "1.0.0", "1.1.0-beta.1", 0},
		{"v prefix", "v1.0.0", "v2.0.0", 0},
		{"same version", "1.0.0", "1.0.0", 1},
		{"downgrade", "1.2.0", "1.1.9", 1},
		{"not semver", "1.0.0", "latest", 1},
		{"current not semver", "next", "1.0.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CandidateWarnings(tt.current, tt.candidate); len(got) != tt.want {
				t.Errorf("CandidateWarnings(%q, %q) = %v, want %d warnings", tt.current, tt.candidate, got, tt.want)
			}
		})
	}
}
