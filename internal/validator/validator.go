package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/printer"
	"github.com/pkgrel/pkgrel/internal/registry"
	"github.com/pkgrel/pkgrel/internal/tui"
	"golang.org/x/mod/semver"
)

// DefaultMaxTries is the highest attempt index at which a collision is
// still answered with a new prompt.
const DefaultMaxTries = 3

// VersionPrompter supplies candidate versions.
type VersionPrompter interface {
	InputVersion(ctx context.Context, pkg discovery.Package) (string, error)
}

// Attempt is the outcome of a successful Resolve.
type Attempt struct {
	Package   discovery.Package
	Candidate string

	// Count is the zero-based index of the accepted attempt.
	Count int
}

// ExhaustedError is returned when every attempt collided with a published version.
type ExhaustedError struct {
	Package  string
	Version  string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s@%s is already published; giving up after %d attempts", e.Package, e.Version, e.Attempts)
}

var errEmptyCandidate = errors.New("version cannot be empty")

// Validator runs the prompt/check loop.
type Validator struct {
	registry  registry.Registry
	prompter  VersionPrompter
	indicator tui.Indicator
	maxTries  int
	check     bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxTries sets the attempt bound. Negative values are ignored.
func WithMaxTries(n int) Option {
	return func(v *Validator) {
		if n >= 0 {
			v.maxTries = n
		}
	}
}

// WithIndicator sets the progress indicator shown during registry checks.
func WithIndicator(ind tui.Indicator) Option {
	return func(v *Validator) {
		if ind != nil {
			v.indicator = ind
		}
	}
}

// WithRegistryCheck enables or disables the registry lookup. When disabled
// the first non-empty candidate is accepted.
func WithRegistryCheck(enabled bool) Option {
	return func(v *Validator) {
		v.check = enabled
	}
}

// New creates a Validator.
func New(reg registry.Registry, prompter VersionPrompter, opts ...Option) *Validator {
	v := &Validator{
		registry:  reg,
		prompter:  prompter,
		indicator: tui.PlainIndicator{},
		maxTries:  DefaultMaxTries,
		check:     true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// MaxTries returns the configured attempt bound.
func (v *Validator) MaxTries() int {
	return v.maxTries
}

// Resolve prompts for versions until one is not yet published. A collision
// on attempt MaxTries ends the loop with *ExhaustedError.
func (v *Validator) Resolve(ctx context.Context, pkg discovery.Package) (Attempt, error) {
	attempt := Attempt{Package: pkg}

	for {
		candidate, err := v.prompter.InputVersion(ctx, pkg)
		if err != nil {
			return Attempt{}, err
		}
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			return Attempt{}, errEmptyCandidate
		}
		attempt.Candidate = candidate

		for _, w := range CandidateWarnings(pkg.Version, candidate) {
			printer.PrintWarning(w)
		}

		if !v.check {
			return attempt, nil
		}

		published, err := v.published(ctx, pkg.Name, candidate)
		if err != nil {
			return Attempt{}, err
		}
		if !published {
			printer.PrintSuccess(fmt.Sprintf("%s@%s is available.", pkg.Name, candidate))
			return attempt, nil
		}

		if attempt.Count >= v.maxTries {
			return Attempt{}, &ExhaustedError{
				Package:  pkg.Name,
				Version:  candidate,
				Attempts: attempt.Count + 1,
			}
		}

		printer.PrintWarning(fmt.Sprintf("%s@%s is already published, please choose another version (%d of %d retries left).",
			pkg.Name, candidate, v.maxTries-attempt.Count, v.maxTries))
		attempt.Count++
	}
}

func (v *Validator) published(ctx context.Context, name, version string) (bool, error) {
	var published bool
	title := fmt.Sprintf("Checking %s@%s", name, version)
	err := v.indicator.Run(ctx, title, func(ctx context.Context) error {
		var err error
		published, err = v.registry.Published(ctx, name, version)
		return err
	})
	return published, err
}

// CandidateWarnings returns non-blocking remarks about candidate: whether it
// is a semantic version and whether it moves forward from current.
func CandidateWarnings(current, candidate string) []string {
	var warnings []string

	cand := canonical(candidate)
	if !semver.IsValid(cand) {
		return append(warnings, fmt.Sprintf("%s is not a semantic version.", candidate))
	}

	cur := canonical(current)
	if semver.IsValid(cur) && semver.Compare(cand, cur) <= 0 {
		warnings = append(warnings, fmt.Sprintf("%s is not greater than the current version %s.", candidate, current))
	}
	return warnings
}

func canonical(v string) string {
	return "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
}
