package cli

import (
	"context"

	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/gitops"
	"github.com/pkgrel/pkgrel/internal/release"
	urfavecli "github.com/urfave/cli/v3"
)

func (a *app) tagCmd() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "tag",
		Usage: "Create and push the release tag for the package in a directory",
		UsageText: `pkgrel tag [options]

Reads the manifest in --dir, fetches remote tags, refuses to overwrite an
existing tag, then creates an annotated tag and pushes it.`,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Package directory containing the manifest",
				Value:   ".",
			},
			&urfavecli.BoolFlag{
				Name:  "no-push",
				Usage: "Create the tag without pushing it",
			},
			&urfavecli.StringFlag{
				Name:  "remote",
				Usage: "Git remote to fetch tags from and push to",
			},
		},
		Action: a.runTag,
	}
}

func (a *app) runTag(ctx context.Context, cmd *urfavecli.Command) error {
	pkg, err := discovery.NewLocator(a.deps.FS, a.cfg.Manifest).Load(ctx, cmd.String("dir"))
	if err != nil {
		return err
	}

	opts := a.cfg.ReleaseOptions()
	if cmd.Bool("no-push") {
		opts.Push = false
	}
	if cmd.IsSet("remote") {
		opts.Remote = cmd.String("remote")
	}

	_, err = release.NewTagger(gitops.New(a.runner, ""), opts).Run(ctx, pkg)
	return err
}
