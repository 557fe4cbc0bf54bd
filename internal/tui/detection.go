package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are environment variables set by common CI/CD providers.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"BITBUCKET_BUILD_NUMBER",
	"DRONE",
	"TF_BUILD",
}

// IsInteractive determines if the current environment supports full-screen
// prompts. It returns false when stdin or stdout is not a terminal, or when
// running in a CI environment.
func IsInteractive() bool {
	if !IsTerminal(os.Stdin) || !IsTerminal(os.Stdout) {
		return false
	}
	return !isCI()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

func isCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
