package release

import (
	"github.com/pkgrel/pkgrel/internal/core"
	"github.com/pkgrel/pkgrel/internal/discovery"
	"github.com/pkgrel/pkgrel/internal/gitops"
)

const (
	DefaultTagTemplate   = "{name}@{version}"
	DefaultTagMessage    = "Release version {version}"
	DefaultCommitMessage = "Release version {version}"
)

// DefaultPublishCommand runs the package's test script, which doubles as
// its publish step.
var DefaultPublishCommand = []string{"npm", "run", "test", "--prefix", "{dir}"}

// Options controls the publish and git steps. Templates may use {name},
// {version} and {dir}.
type Options struct {
	PublishCommand []string
	TagTemplate    string
	TagMessage     string
	CommitMessage  string
	Remote         string
	Push           bool
	FetchTags      bool
}

// DefaultOptions returns the canonical workflow settings.
func DefaultOptions() Options {
	return Options{
		PublishCommand: DefaultPublishCommand,
		TagTemplate:    DefaultTagTemplate,
		TagMessage:     DefaultTagMessage,
		CommitMessage:  DefaultCommitMessage,
		Remote:         gitops.DefaultRemote,
		Push:           true,
		FetchTags:      true,
	}
}

func (o Options) withDefaults() Options {
	if len(o.PublishCommand) == 0 {
		o.PublishCommand = DefaultPublishCommand
	}
	if o.TagTemplate == "" {
		o.TagTemplate = DefaultTagTemplate
	}
	if o.TagMessage == "" {
		o.TagMessage = DefaultTagMessage
	}
	if o.CommitMessage == "" {
		o.CommitMessage = DefaultCommitMessage
	}
	if o.Remote == "" {
		o.Remote = gitops.DefaultRemote
	}
	return o
}

func placeholders(pkg discovery.Package) core.Placeholders {
	return core.Placeholders{
		"name":    pkg.Name,
		"version": pkg.Version,
		"dir":     pkg.Dir,
	}
}

// TagName renders the tag template for pkg.
func (o Options) TagName(pkg discovery.Package) string {
	return placeholders(pkg).Expand(o.withDefaults().TagTemplate)
}
