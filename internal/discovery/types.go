package discovery

import "fmt"

// Package describes a releasable package found on disk.
type Package struct {
	// Name is the package name from the manifest.
	Name string

	// Version is the current version string from the manifest.
	Version string

	// ManifestPath is the path to the manifest file.
	ManifestPath string

	// Dir is the package directory.
	Dir string
}

// String returns "<name>@<version>".
func (p Package) String() string {
	return p.Name + "@" + p.Version
}

// Label is the text shown for the package in selection lists.
func (p Package) Label() string {
	return fmt.Sprintf("%s (current version: %s)", p.Name, p.Version)
}

// WithVersion returns a copy of p carrying version.
func (p Package) WithVersion(version string) Package {
	p.Version = version
	return p
}

// Error is returned when the packages root cannot be read.
type Error struct {
	Root string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot read packages directory %q: %v", e.Root, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
