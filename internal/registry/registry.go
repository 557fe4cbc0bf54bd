// Package registry answers whether a package version has already been
// published. It shells out to the package manager's "view" command and
// classifies its diagnostics.
package registry

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkgrel/pkgrel/internal/core"
)

// Registry reports whether name@version exists in the package registry.
type Registry interface {
	Published(ctx context.Context, name, version string) (bool, error)
}

// DefaultViewCommand queries npm for a single published version.
var DefaultViewCommand = []string{"npm", "view", "{spec}", "version"}

// notFoundPatterns match the diagnostics npm prints when a package or
// version is absent. Anything else is treated as a real failure.
var notFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bE404\b`),
	regexp.MustCompile(`(?i)\b404 Not Found\b`),
	regexp.MustCompile(`(?i)is not in (this|the npm) registry`),
	regexp.MustCompile(`(?i)No match found for version`),
}

// IsNotFound reports whether registry output signals a missing package
// or version.
func IsNotFound(output string) bool {
	for _, p := range notFoundPatterns {
		if p.MatchString(output) {
			return true
		}
	}
	return false
}

// QueryError is returned when the registry query fails for a reason other
// than "not found".
type QueryError struct {
	Spec string
	Err  error
}

func (e *QueryError) Error() string {
	if cmdErr, ok := core.IsExitError(e.Err); ok {
		if diag := cmdErr.Diagnostic(); diag != "" {
			return fmt.Sprintf("registry lookup for %s failed: %s", e.Spec, diag)
		}
	}
	return fmt.Sprintf("registry lookup for %s failed: %v", e.Spec, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// CommandRegistry implements Registry by running an external view command.
type CommandRegistry struct {
	runner  core.CommandRunner
	command []string
	dir     string
}

// NewCommandRegistry creates a registry client. command may use the
// placeholders {spec}, {name} and {version}; nil means DefaultViewCommand.
func NewCommandRegistry(runner core.CommandRunner, command []string, dir string) *CommandRegistry {
	if len(command) == 0 {
		command = DefaultViewCommand
	}
	return &CommandRegistry{runner: runner, command: command, dir: dir}
}

var _ Registry = (*CommandRegistry)(nil)

// Published runs the view command for name@version.
//
// npm exits non-zero with E404 when the package does not exist and exits 0
// with empty output when the package exists but the version does not; both
// mean the version is available.
func (r *CommandRegistry) Published(ctx context.Context, name, version string) (bool, error) {
	spec := name + "@" + version
	args := core.Placeholders{
		"spec":    spec,
		"name":    name,
		"version": version,
	}.ExpandAll(r.command)

	res, err := r.runner.Run(ctx, core.Command{Name: args[0], Args: args[1:], Dir: r.dir})
	if err != nil {
		if cmdErr, ok := core.IsExitError(err); ok && IsNotFound(cmdErr.Stderr+"\n"+cmdErr.Stdout) {
			return false, nil
		}
		return false, &QueryError{Spec: spec, Err: err}
	}

	return strings.TrimSpace(res.Stdout) != "", nil
}
