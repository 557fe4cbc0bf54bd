package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkgrel/pkgrel/internal/config"
	"github.com/pkgrel/pkgrel/internal/core"
	"github.com/pkgrel/pkgrel/internal/printer"
	"github.com/pkgrel/pkgrel/internal/tui"
	"github.com/pkgrel/pkgrel/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// Deps are the process resources the commands run against.
type Deps struct {
	FS     core.FileSystem
	Runner core.CommandRunner
	In     io.Reader
	Out    io.Writer

	// Interactive reports whether full-screen prompts can be shown.
	Interactive func() bool
}

// DefaultDeps wires the real filesystem, process runner and terminal.
func DefaultDeps() Deps {
	return Deps{
		FS:          core.NewOSFileSystem(),
		Runner:      core.NewOSCommandRunner(),
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: tui.IsInteractive,
	}
}

func (d Deps) withDefaults() Deps {
	def := DefaultDeps()
	if d.FS == nil {
		d.FS = def.FS
	}
	if d.Runner == nil {
		d.Runner = def.Runner
	}
	if d.In == nil {
		d.In = def.In
	}
	if d.Out == nil {
		d.Out = def.Out
	}
	if d.Interactive == nil {
		d.Interactive = def.Interactive
	}
	return d
}

// app is the state shared by the commands of one invocation. cfg and
// runner are set by the root Before hook.
type app struct {
	deps   Deps
	cfg    *config.Config
	runner core.CommandRunner
}

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the pkgrel cli.
func New(deps Deps) *urfavecli.Command {
	a := &app{deps: deps.withDefaults()}

	return &urfavecli.Command{
		Name:                  "pkgrel",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Bump, publish and tag a package in a multi-package repository",
		EnableShellCompletion: true,
		Writer:                a.deps.Out,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a .pkgrel.yaml or .pkgrel.toml file",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Print every external command before it runs",
			},
			&urfavecli.StringFlag{
				Name:  "theme",
				Usage: "Prompt theme (pkgrel, base, base16, catppuccin, charm, dracula)",
			},
		},
		Before: a.before,
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return a.runRelease(ctx, cmd)
		},
		Commands: []*urfavecli.Command{
			a.releaseCmd(),
			a.tagCmd(),
			a.listCmd(),
		},
	}
}

// before loads the configuration and applies the global flags.
func (a *app) before(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
	printer.SetOutput(a.deps.Out)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if cmd.IsSet("theme") {
		theme := cmd.String("theme")
		if !tui.IsValidTheme(theme) {
			return ctx, fmt.Errorf("unknown theme %q", theme)
		}
		cfg.Theme = theme
	}
	tui.SetTheme(cfg.Theme)

	printer.SetNoColor(cmd.Bool("no-color") || cfg.NoColor)

	a.cfg = cfg
	a.runner = a.deps.Runner
	if cmd.Bool("verbose") {
		a.runner = core.NewTracingRunner(a.deps.Runner, func(c core.Command) {
			printer.PrintFaint("$ " + c.String())
		})
	}
	return ctx, nil
}
