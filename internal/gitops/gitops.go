// Package gitops runs the git commands used to commit a release and to
// create and push its tag.
package gitops

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgrel/pkgrel/internal/core"
)

// DefaultRemote is the remote tags are fetched from and pushed to.
const DefaultRemote = "origin"

// Operations is the set of git commands a release needs.
type Operations interface {
	HasChanges(ctx context.Context) (bool, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	FetchTags(ctx context.Context, remote string) error
	TagExists(ctx context.Context, name string) (bool, error)
	CreateAnnotatedTag(ctx context.Context, name, message string) error
	PushTag(ctx context.Context, remote, name string) error
}

// Git implements Operations by running git in a working directory.
type Git struct {
	runner core.CommandRunner
	dir    string
}

// New creates a Git bound to dir. An empty dir means the current directory.
func New(runner core.CommandRunner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

var _ Operations = (*Git)(nil)

func (g *Git) run(ctx context.Context, args ...string) (core.Result, error) {
	res, err := g.runner.Run(ctx, core.Command{Name: "git", Args: args, Dir: g.dir})
	if err != nil {
		return res, wrap(args, err)
	}
	return res, nil
}

// wrap prefixes err with git's own diagnostic when there is one.
func wrap(args []string, err error) error {
	if cmdErr, ok := core.IsExitError(err); ok {
		if diag := cmdErr.Diagnostic(); diag != "" {
			return fmt.Errorf("%s: %w", diag, err)
		}
	}
	return fmt.Errorf("git %s failed: %w", args[0], err)
}

// HasChanges reports whether "git diff" prints anything, i.e. whether the
// working tree differs from the index.
func (g *Git) HasChanges(ctx context.Context) (bool, error) {
	res, err := g.run(ctx, "diff")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

func (g *Git) StageAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", "-A")
	return err
}

func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

func (g *Git) FetchTags(ctx context.Context, remote string) error {
	_, err := g.run(ctx, "fetch", remoteOrDefault(remote), "--tags")
	return err
}

func (g *Git) TagExists(ctx context.Context, name string) (bool, error) {
	res, err := g.run(ctx, "tag", "-l", name)
	if err != nil {
		return false, err
	}

	// git tag -l prints the tag name when it exists
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

func (g *Git) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	_, err := g.run(ctx, "tag", "-a", name, "-m", message)
	return err
}

func (g *Git) PushTag(ctx context.Context, remote, name string) error {
	_, err := g.run(ctx, "push", remoteOrDefault(remote), name)
	return err
}

func remoteOrDefault(remote string) string {
	if remote == "" {
		return DefaultRemote
	}
	return remote
}
