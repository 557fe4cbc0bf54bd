package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkgrel/pkgrel/internal/discovery"
)

// Prompter asks the user which package to release and which version to assign.
type Prompter interface {
	SelectPackage(ctx context.Context, pkgs []discovery.Package) (discovery.Package, error)
	InputVersion(ctx context.Context, pkg discovery.Package) (string, error)
}

var (
	errEmptyVersion = errors.New("version cannot be empty")
	errNoPackages   = errors.New("no packages to choose from")
)

// resolveVersion applies the default to an empty answer and rejects an
// answer that is still empty.
func resolveVersion(input, def string) (string, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		v = strings.TrimSpace(def)
	}
	if v == "" {
		return "", errEmptyVersion
	}
	return v, nil
}

func versionTitle(pkg discovery.Package) string {
	return fmt.Sprintf("Enter new version for %s:", pkg.Name)
}

const selectTitle = "Select a package to upgrade:"

// FormPrompter prompts with huh forms. It needs a real terminal.
type FormPrompter struct {
	session *Session
}

// NewFormPrompter creates a FormPrompter bound to session.
func NewFormPrompter(session *Session) *FormPrompter {
	return &FormPrompter{session: session}
}

var _ Prompter = (*FormPrompter)(nil)

func (p *FormPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault()).
		WithInput(p.session.In()).
		WithOutput(p.session.Out()).
		WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return ErrInterrupted
		}
		return err
	}
	return nil
}

// SelectPackage shows a single-choice list of packages.
func (p *FormPrompter) SelectPackage(ctx context.Context, pkgs []discovery.Package) (discovery.Package, error) {
	if len(pkgs) == 0 {
		return discovery.Package{}, errNoPackages
	}

	options := make([]huh.Option[int], len(pkgs))
	for i, pkg := range pkgs {
		options[i] = huh.NewOption(pkg.Label(), i)
	}

	choice := 0
	field := huh.NewSelect[int]().
		Title(selectTitle).
		Options(options...).
		Value(&choice)

	if err := p.run(ctx, field); err != nil {
		return discovery.Package{}, err
	}
	return pkgs[choice], nil
}

// InputVersion asks for a version, keeping the current one when left empty.
func (p *FormPrompter) InputVersion(ctx context.Context, pkg discovery.Package) (string, error) {
	for {
		value := ""
		field := huh.NewInput().
			Title(versionTitle(pkg)).
			Placeholder(pkg.Version).
			Value(&value).
			Validate(func(s string) error {
				_, err := resolveVersion(s, pkg.Version)
				return err
			})
		if pkg.Version != "" {
			field = field.Description(fmt.Sprintf("Leave empty to keep %s", pkg.Version))
		}

		if err := p.run(ctx, field); err != nil {
			return "", err
		}
		if v, err := resolveVersion(value, pkg.Version); err == nil {
			return v, nil
		}
	}
}

// LinePrompter prompts with plain numbered lists and line input. It works
// on pipes and dumb terminals.
type LinePrompter struct {
	session *Session
}

// NewLinePrompter creates a LinePrompter bound to session.
func NewLinePrompter(session *Session) *LinePrompter {
	return &LinePrompter{session: session}
}

var _ Prompter = (*LinePrompter)(nil)

// SelectPackage prints a numbered list and reads a choice. An empty answer
// selects the first entry.
func (p *LinePrompter) SelectPackage(ctx context.Context, pkgs []discovery.Package) (discovery.Package, error) {
	if len(pkgs) == 0 {
		return discovery.Package{}, errNoPackages
	}

	out := p.session.Out()
	fmt.Fprintf(out, "? %s\n", selectTitle)
	for i, pkg := range pkgs {
		fmt.Fprintf(out, "  %d) %s\n", i+1, pkg.Label())
	}

	for {
		fmt.Fprintf(out, "  Answer [1-%d]: ", len(pkgs))
		line, err := p.session.ReadLine(ctx)
		if err != nil {
			return discovery.Package{}, err
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return pkgs[0], nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(pkgs) {
			return pkgs[n-1], nil
		}
		fmt.Fprintf(out, ">> Please enter a number between 1 and %d\n", len(pkgs))
	}
}

// InputVersion reads a version, re-asking until the answer is non-empty.
func (p *LinePrompter) InputVersion(ctx context.Context, pkg discovery.Package) (string, error) {
	out := p.session.Out()
	for {
		if pkg.Version != "" {
			fmt.Fprintf(out, "? %s (%s) ", versionTitle(pkg), pkg.Version)
		} else {
			fmt.Fprintf(out, "? %s ", versionTitle(pkg))
		}

		line, err := p.session.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		v, err := resolveVersion(line, pkg.Version)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(out, ">> Version cannot be empty!")
	}
}

// StaticPrompter answers from preset values and defers to Fallback for
// anything left unset.
type StaticPrompter struct {
	// Package selects by package name or directory name.
	Package string

	// Version is returned for every version prompt.
	Version string

	Fallback Prompter
}

var _ Prompter = (*StaticPrompter)(nil)

// SelectPackage returns the package matching p.Package.
func (p *StaticPrompter) SelectPackage(ctx context.Context, pkgs []discovery.Package) (discovery.Package, error) {
	if p.Package == "" {
		if p.Fallback == nil {
			return discovery.Package{}, errors.New("no package specified")
		}
		return p.Fallback.SelectPackage(ctx, pkgs)
	}

	for _, pkg := range pkgs {
		if pkg.Name == p.Package || filepath.Base(pkg.Dir) == p.Package {
			return pkg, nil
		}
	}

	names := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		names[i] = pkg.Name
	}
	return discovery.Package{}, fmt.Errorf("package %q not found (available: %s)", p.Package, strings.Join(names, ", "))
}

// InputVersion returns p.Version.
func (p *StaticPrompter) InputVersion(ctx context.Context, pkg discovery.Package) (string, error) {
	if strings.TrimSpace(p.Version) == "" {
		if p.Fallback == nil {
			return "", errEmptyVersion
		}
		return p.Fallback.InputVersion(ctx, pkg)
	}
	return strings.TrimSpace(p.Version), nil
}
