package release

import (
	"context"
	"fmt"

	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/gitops"
	"github.com/pkgrel/pkgrel/internal/printer"
)

// Tagger creates and pushes the release tag for a package.
type Tagger struct {
	git  gitops.Operations
	opts Options
}

// NewTagger creates a Tagger. Empty option fields take their defaults.
func NewTagger(git gitops.Operations, opts Options) *Tagger {
	return &Tagger{git: git, opts: opts.withDefaults()}
}

// Run fetches remote tags, refuses to overwrite an existing tag, creates
// an annotated tag for pkg and pushes it. It returns the tag name.
func (t *Tagger) Run(ctx context.Context, pkg discovery.Package) (string, error) {
	vars := placeholders(pkg)
	name := vars.Expand(t.opts.TagTemplate)
	message := vars.Expand(t.opts.TagMessage)

	if t.opts.FetchTags {
		if err := t.git.FetchTags(ctx, t.opts.Remote); err != nil {
			return name, &TagError{Tag: name, Step: StepFetch, Err: err}
		}
	}

	exists, err := t.git.TagExists(ctx, name)
	if err != nil {
		return name, &TagError{Tag: name, Step: StepCheck, Err: err}
	}
	if exists {
		return name, &TagError{Tag: name, Step: StepCheck, Err: ErrTagExists}
	}

	if err := t.git.CreateAnnotatedTag(ctx, name, message); err != nil {
		return name, &TagError{Tag: name, Step: StepCreate, Err: err}
	}
	printer.PrintSuccess(fmt.Sprintf("Created tag %s", name))

	if !t.opts.Push {
		printer.PrintFaint(fmt.Sprintf("Skipping push of %s", name))
		return name, nil
	}

	if err := t.git.PushTag(ctx, t.opts.Remote, name); err != nil {
		return name, &TagError{Tag: name, Step: StepPush, Err: err}
	}
	printer.PrintSuccess(fmt.Sprintf("Pushed tag %s to %s", name, t.opts.Remote))

	return name, nil
}
