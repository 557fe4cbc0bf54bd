// Package release performs the side effects of a release once a version
// has been chosen: persist it, publish, commit and tag.
package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgrel/pkgrel/internal/core"
	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/gitops"
	"github.com/pkgrel/pkgrel/internal/printer"
)

// VersionWriter persists a version into a manifest.
type VersionWriter interface {
	SetVersion(ctx context.Context, path, version string) error
}

// Orchestrator runs the release steps in order and stops at the first
// failure. Nothing already applied is rolled back.
type Orchestrator struct {
	writer VersionWriter
	runner core.CommandRunner
	git    gitops.Operations
	tagger *Tagger
	opts   Options
}

// NewOrchestrator creates an Orchestrator. Empty option fields take their
// defaults.
func NewOrchestrator(writer VersionWriter, runner core.CommandRunner, git gitops.Operations, opts Options) *Orchestrator {
	opts = opts.withDefaults()
	return &Orchestrator{
		writer: writer,
		runner: runner,
		git:    git,
		tagger: NewTagger(git, opts),
		opts:   opts,
	}
}

// Run releases pkg at version and returns the created tag name.
func (o *Orchestrator) Run(ctx context.Context, pkg discovery.Package, version string) (string, error) {
	if err := o.Persist(ctx, pkg, version); err != nil {
		return "", err
	}
	pkg = pkg.WithVersion(version)

	if err := o.Publish(ctx, pkg); err != nil {
		return "", err
	}

	if err := o.CommitChanges(ctx, pkg); err != nil {
		return "", err
	}

	return o.tagger.Run(ctx, pkg)
}

// Persist writes version into the package manifest.
func (o *Orchestrator) Persist(ctx context.Context, pkg discovery.Package, version string) error {
	if err := o.writer.SetVersion(ctx, pkg.ManifestPath, version); err != nil {
		return err
	}
	printer.PrintInfo(fmt.Sprintf("Updated %s to version %s", pkg.ManifestPath, version))
	return nil
}

// Publish runs the publish command for pkg and prints its output.
func (o *Orchestrator) Publish(ctx context.Context, pkg discovery.Package) error {
	args := placeholders(pkg).ExpandAll(o.opts.PublishCommand)
	cmd := core.Command{Name: args[0], Args: args[1:]}

	printer.PrintInfo(fmt.Sprintf("%s publish with < %s >", cmd.Name, pkg.Dir))

	res, err := o.runner.Run(ctx, cmd)
	if err != nil {
		pubErr := &PublishError{Package: pkg.String(), Command: cmd.String(), Err: err}
		if cmdErr, ok := core.IsExitError(err); ok {
			pubErr.Output = cmdErr.Diagnostic()
		}
		return pubErr
	}

	if out := strings.TrimRight(res.Stdout, "\n"); strings.TrimSpace(out) != "" {
		printer.Println(out)
	}
	printer.PrintSuccess(fmt.Sprintf("Package %s published successfully.", pkg))
	return nil
}

// CommitChanges commits the working tree when git diff reports changes.
// A clean tree is not an error and no empty commit is made.
func (o *Orchestrator) CommitChanges(ctx context.Context, pkg discovery.Package) error {
	tag := o.opts.TagName(pkg)

	changed, err := o.git.HasChanges(ctx)
	if err != nil {
		return &TagError{Tag: tag, Step: StepCommit, Err: err}
	}
	if !changed {
		printer.PrintInfo("No changes to commit.")
		return nil
	}

	if err := o.git.StageAll(ctx); err != nil {
		return &TagError{Tag: tag, Step: StepCommit, Err: err}
	}

	message := placeholders(pkg).Expand(o.opts.CommitMessage)
	if err := o.git.Commit(ctx, message); err != nil {
		return &TagError{Tag: tag, Step: StepCommit, Err: err}
	}
	printer.PrintSuccess(fmt.Sprintf("Committed %q", message))
	return nil
}
