package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/printer"
	"github.com/tidwall/pretty"
	urfavecli "github.com/urfave/cli/v3"
)

// Output formats supported by the list command.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

func (a *app) listCmd() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the packages pkgrel can release",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory containing the packages",
			},
			&urfavecli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, table",
				Value:   FormatText,
			},
		},
		Action: a.runList,
	}
}

func (a *app) runList(ctx context.Context, cmd *urfavecli.Command) error {
	root := a.cfg.Root
	if cmd.IsSet("root") {
		root = cmd.String("root")
	}

	pkgs, err := discovery.NewLocator(a.deps.FS, a.cfg.Manifest).Locate(ctx, root)
	if err != nil {
		return err
	}

	out, err := formatPackages(pkgs, cmd.String("format"))
	if err != nil {
		return err
	}
	fmt.Fprint(a.deps.Out, out)
	return nil
}

// packageJSON is the list entry written by --format json.
type packageJSON struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Dir      string `json:"dir"`
	Manifest string `json:"manifest"`
}

func formatPackages(pkgs []discovery.Package, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return formatText(pkgs), nil
	case FormatJSON:
		return formatJSON(pkgs)
	case FormatTable:
		return formatTable(pkgs), nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: %s, %s, %s)", format, FormatText, FormatJSON, FormatTable)
	}
}

func formatText(pkgs []discovery.Package) string {
	if len(pkgs) == 0 {
		return printer.Warning("No packages found.") + "\n"
	}

	var sb strings.Builder
	for _, p := range pkgs {
		fmt.Fprintf(&sb, "%s %s\n", p.Label(), printer.Faint(p.Dir))
	}
	return sb.String()
}

func formatJSON(pkgs []discovery.Package) (string, error) {
	entries := make([]packageJSON, len(pkgs))
	for i, p := range pkgs {
		entries[i] = packageJSON{Name: p.Name, Version: p.Version, Dir: p.Dir, Manifest: p.ManifestPath}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode packages: %w", err)
	}
	return string(pretty.Pretty(data)), nil
}

func formatTable(pkgs []discovery.Package) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "VERSION", "DIRECTORY").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, p := range pkgs {
		t.Row(p.Name, p.Version, p.Dir)
	}
	return t.String() + "\n"
}
