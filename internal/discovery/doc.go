// Package discovery locates the releasable packages of a multi-package
// repository. Every immediate subdirectory of the packages root that holds a
// valid manifest becomes a Package; anything else is ignored.
package discovery
