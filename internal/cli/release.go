package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/gitops"
	"github.com/pkgrel/pkgrel/internal/manifest"
	"github.com/pkgrel/pkgrel/internal/printer"
	"github.com/pkgrel/pkgrel/internal/registry"
	"github.com/pkgrel/pkgrel/internal/release"
	"github.com/pkgrel/pkgrel/internal/tui"
	"github.com/pkgrel/pkgrel/internal/validator"
	urfavecli "github.com/urfave/cli/v3"
)

func (a *app) releaseCmd() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "release",
		Usage: "Select a package, assign a new version, publish it and tag the release",
		UsageText: `pkgrel release [options]

Scans the packages directory for manifests, asks which package to release
and which version to assign, checks the registry for that version, then
writes the manifest, publishes, commits and pushes an annotated tag.`,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory containing the packages",
			},
			&urfavecli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "Package name or directory to release (skips the selection prompt)",
			},
			&urfavecli.StringFlag{
				Name:  "to",
				Usage: "Version to release (skips the version prompt)",
			},
			&urfavecli.BoolFlag{
				Name:  "skip-check",
				Usage: "Do not query the registry for an existing version",
			},
			&urfavecli.BoolFlag{
				Name:  "no-push",
				Usage: "Create the tag without pushing it",
			},
			&urfavecli.BoolFlag{
				Name:  "plain",
				Usage: "Use line-based prompts instead of the interactive form",
			},
			&urfavecli.IntFlag{
				Name:  "max-tries",
				Usage: "Re-prompts allowed after a version collision",
			},
			&urfavecli.StringFlag{
				Name:  "remote",
				Usage: "Git remote to fetch tags from and push to",
			},
		},
		Action: a.runRelease,
	}
}

// releaseSettings is the configuration with release flags applied.
type releaseSettings struct {
	root     string
	pkg      string
	to       string
	check    bool
	plain    bool
	maxTries int
	opts     release.Options
}

func (a *app) releaseSettings(cmd *urfavecli.Command) (releaseSettings, error) {
	s := releaseSettings{
		root:     a.cfg.Root,
		check:    a.cfg.Registry.Check,
		maxTries: a.cfg.MaxTries,
		opts:     a.cfg.ReleaseOptions(),
	}

	if cmd.IsSet("root") {
		s.root = cmd.String("root")
	}
	if cmd.IsSet("package") {
		s.pkg = cmd.String("package")
	}
	if cmd.IsSet("to") {
		s.to = cmd.String("to")
	}
	if cmd.Bool("skip-check") {
		s.check = false
	}
	if cmd.Bool("no-push") {
		s.opts.Push = false
	}
	if cmd.Bool("plain") {
		s.plain = true
	}
	if cmd.IsSet("max-tries") {
		s.maxTries = cmd.Int("max-tries")
		if s.maxTries < 0 {
			return s, fmt.Errorf("--max-tries must be >= 0, got %d", s.maxTries)
		}
	}
	if cmd.IsSet("remote") {
		s.opts.Remote = cmd.String("remote")
	}
	return s, nil
}

// runRelease drives the whole workflow: locate, select, validate, release.
func (a *app) runRelease(ctx context.Context, cmd *urfavecli.Command) error {
	s, err := a.releaseSettings(cmd)
	if err != nil {
		return err
	}

	session := tui.NewSession(ctx, a.deps.In, a.deps.Out)
	defer session.Close()

	err = a.release(session, s)
	if err != nil && session.Interrupted() {
		return fmt.Errorf("%w: %w", tui.ErrInterrupted, err)
	}
	return err
}

func (a *app) release(session *tui.Session, s releaseSettings) error {
	ctx := session.Context()

	locator := discovery.NewLocator(a.deps.FS, a.cfg.Manifest)
	pkgs, err := locator.Locate(ctx, s.root)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		printer.PrintWarning(fmt.Sprintf("No packages found in %s.", s.root))
		return nil
	}

	interactive := a.deps.Interactive() && !s.plain
	prompter := a.prompter(session, interactive, s)

	pkg, err := prompter.SelectPackage(ctx, pkgs)
	if err != nil {
		return err
	}

	var indicator tui.Indicator = tui.PlainIndicator{Out: a.deps.Out}
	if interactive {
		indicator = tui.SpinnerIndicator{}
	}

	reg := registry.NewCommandRegistry(a.runner, a.cfg.Registry.Command, "")
	v := validator.New(reg, prompter,
		validator.WithMaxTries(s.maxTries),
		validator.WithIndicator(indicator),
		validator.WithRegistryCheck(s.check),
	)

	attempt, err := v.Resolve(ctx, pkg)
	if err != nil {
		return err
	}

	orch := release.NewOrchestrator(
		manifest.NewWriter(a.deps.FS),
		a.runner,
		gitops.New(a.runner, ""),
		s.opts,
	)
	tag, err := orch.Run(ctx, attempt.Package, attempt.Candidate)
	if err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Released %s@%s (tag %s)", pkg.Name, attempt.Candidate, tag))
	return nil
}

func (a *app) prompter(session *tui.Session, interactive bool, s releaseSettings) tui.Prompter {
	var base tui.Prompter = tui.NewLinePrompter(session)
	if interactive {
		base = tui.NewFormPrompter(session)
	}

	if s.pkg == "" && s.to == "" {
		return base
	}
	return &tui.StaticPrompter{Package: s.pkg, Version: s.to, Fallback: base}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, tui.ErrInterrupted):
		return 130
	default:
		return 1
	}
}

// ReportError prints err the way the user should see it.
func ReportError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, tui.ErrInterrupted) {
		printer.PrintWarning("Interrupted.")
		return
	}
	printer.PrintError(fmt.Sprintf("Error: %v", err))
}
