// Package config loads pkgrel settings from .pkgrel.yaml or .pkgrel.toml,
// applies environment overrides and validates the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkgrel/pkgrel/internal/gitops"
	"github.com/pkgrel/pkgrel/internal/manifest"
	"github.com/pkgrel/pkgrel/internal/registry"
	"github.com/pkgrel/pkgrel/internal/release"
	"github.com/pkgrel/pkgrel/internal/tui"
	"github.com/pkgrel/pkgrel/internal/validator"
)

// Config file names searched in the working directory, in order.
const (
	YAMLFile = ".pkgrel.yaml"
	TOMLFile = ".pkgrel.toml"
)

// DefaultRoot is the directory scanned for packages.
const DefaultRoot = "packages"

// RegistryConfig controls the published-version check.
type RegistryConfig struct {
	Check   bool     `yaml:"check" toml:"check"`
	Command []string `yaml:"command,omitempty" toml:"command,omitempty"`
}

// PublishConfig holds the publish command.
type PublishConfig struct {
	Command []string `yaml:"command,omitempty" toml:"command,omitempty"`
}

// GitConfig holds git settings.
type GitConfig struct {
	Remote string `yaml:"remote" toml:"remote"`
}

// TagConfig controls the release tag.
type TagConfig struct {
	Template string `yaml:"template" toml:"template"`
	Message  string `yaml:"message" toml:"message"`
	Push     bool   `yaml:"push" toml:"push"`
	Fetch    bool   `yaml:"fetch" toml:"fetch"`
}

// CommitConfig controls the release commit.
type CommitConfig struct {
	Message string `yaml:"message" toml:"message"`
}

// Config is the main configuration structure for pkgrel.
type Config struct {
	Root     string         `yaml:"root" toml:"root"`
	Manifest string         `yaml:"manifest" toml:"manifest"`
	MaxTries int            `yaml:"max_tries" toml:"max_tries"`
	Theme    string         `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Registry RegistryConfig `yaml:"registry" toml:"registry"`
	Publish  PublishConfig  `yaml:"publish" toml:"publish"`
	Git      GitConfig      `yaml:"git" toml:"git"`
	Tag      TagConfig      `yaml:"tag" toml:"tag"`
	Commit   CommitConfig   `yaml:"commit" toml:"commit"`

	// NoColor is only settable from the environment.
	NoColor bool `yaml:"-" toml:"-"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-" toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	opts := release.DefaultOptions()
	return &Config{
		Root:     DefaultRoot,
		Manifest: manifest.DefaultFilename,
		MaxTries: validator.DefaultMaxTries,
		Theme:    tui.DefaultTheme,
		Registry: RegistryConfig{
			Check:   true,
			Command: registry.DefaultViewCommand,
		},
		Publish: PublishConfig{Command: opts.PublishCommand},
		Git:     GitConfig{Remote: gitops.DefaultRemote},
		Tag: TagConfig{
			Template: opts.TagTemplate,
			Message:  opts.TagMessage,
			Push:     opts.Push,
			Fetch:    opts.FetchTags,
		},
		Commit: CommitConfig{Message: opts.CommitMessage},
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides and validates. An empty path searches the working
// directory for .pkgrel.yaml and then .pkgrel.toml; finding neither is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
		cfg.Source = path
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	for _, name := range []string{YAMLFile, TOMLFile} {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// decode picks the format from the file extension. Unknown keys are errors
// in both formats.
func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yaml.NewDecoder(bytes.NewReader(data), yaml.Strict()).Decode(cfg)
}

// Environment variables that override file settings.
const (
	EnvRoot     = "PKGREL_ROOT"
	EnvRemote   = "PKGREL_REMOTE"
	EnvMaxTries = "PKGREL_MAX_TRIES"
	EnvNoColor  = "PKGREL_NO_COLOR"
)

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = filepath.Clean(v)
	}
	if v := os.Getenv(EnvRemote); v != "" {
		c.SetRemote(v)
	}
	if v := os.Getenv(EnvMaxTries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxTries, v, err)
		}
		c.MaxTries = n
	}
	if v := os.Getenv(EnvNoColor); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoColor, v, err)
		}
		c.NoColor = b
	}
	return nil
}

// SetRemote sets the git remote.
func (c *Config) SetRemote(name string) {
	c.Git.Remote = name
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest must not be empty"))
	}
	if c.MaxTries < 0 {
		errs = append(errs, fmt.Errorf("max_tries must be >= 0, got %d", c.MaxTries))
	}
	if c.Theme != "" && !tui.IsValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (valid: %s)", c.Theme, strings.Join(tui.ValidThemes, ", ")))
	}
	if len(c.Publish.Command) == 0 || strings.TrimSpace(c.Publish.Command[0]) == "" {
		errs = append(errs, errors.New("publish.command must not be empty"))
	}
	if c.Registry.Check && (len(c.Registry.Command) == 0 || strings.TrimSpace(c.Registry.Command[0]) == "") {
		errs = append(errs, errors.New("registry.command must not be empty when registry.check is enabled"))
	}
	if !strings.Contains(c.Tag.Template, "{version}") {
		errs = append(errs, fmt.Errorf("tag.template %q must contain {version}", c.Tag.Template))
	}
	if c.Git.Remote == "" {
		errs = append(errs, errors.New("git.remote must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ReleaseOptions converts the publish, git and tag settings.
func (c *Config) ReleaseOptions() release.Options {
	return release.Options{
		PublishCommand: c.Publish.Command,
		TagTemplate:    c.Tag.Template,
		TagMessage:     c.Tag.Message,
		CommitMessage:  c.Commit.Message,
		Remote:         c.Git.Remote,
		Push:           c.Tag.Push,
		FetchTags:      c.Tag.Fetch,
	}
}
