// Package version holds the pkgrel build version.
package version

import "strings"

// version is overridden at build time:
//
//	go build -ldflags "-X github.com/pkgrel/pkgrel/internal/version.version=1.2.3"
var version = "0.1.0-dev"

// GetVersion returns the build version without a leading "v".
func GetVersion() string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
