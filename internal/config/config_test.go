package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

// inTempDir runs the test from an empty directory with no pkgrel
// environment overrides.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, env := range []string{EnvRoot, EnvRemote, EnvMaxTries, EnvNoColor} {
		t.Setenv(env, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

/* ------------------------------------------------------------------------- */
/* LOAD                                                                      */
/* ------------------------------------------------------------------------- */

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoad_YAML(t *testing.T) {
	inTempDir(t)
	writeFile(t, YAMLFile, `root: libs
max_tries: 5
theme: dracula
git:
  remote: upstream
tag:
  template: rc-{version}
  push: false
publish:
  command: ["pnpm", "publish", "--filter", "{name}"]
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Root != "libs" || cfg.MaxTries != 5 || cfg.Theme != "dracula" {
		t.Errorf("top-level fields not applied: %+v", cfg)
	}
	if cfg.Git.Remote != "upstream" {
		t.Errorf("Git.Remote = %q, want upstream", cfg.Git.Remote)
	}
	if cfg.Tag.Template != "rc-{version}" || cfg.Tag.Push {
		t.Errorf("Tag = %+v", cfg.Tag)
	}
	if !cfg.Tag.Fetch {
		t.Error("unset tag.fetch should keep its default")
	}
	if cfg.Tag.Message != "Release version {version}" {
		t.Errorf("unset tag.message should keep its default, got %q", cfg.Tag.Message)
	}
	if got := strings.Join(cfg.Publish.Command, " "); got != "pnpm publish --filter {name}" {
		t.Errorf("Publish.Command = %q", got)
	}
	if cfg.Source != YAMLFile {
		t.Errorf("Source = %q, want %q", cfg.Source, YAMLFile)
	}
}

func TestLoad_TOML(t *testing.T) {
	inTempDir(t)
	writeFile(t, TOMLFile, `root = "modules"
max_tries = 0

[registry]
check = false

[commit]
message = "chore: release {name}@{version}"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != "modules" || cfg.MaxTries != 0 {
		t.Errorf("top-level fields not applied: %+v", cfg)
	}
	if cfg.Registry.Check {
		t.Error("Registry.Check = true, want false")
	}
	if cfg.Commit.Message != "chore: release {name}@{version}" {
		t.Errorf("Commit.Message = %q", cfg.Commit.Message)
	}
}

func TestLoad_YAMLPreferredOverTOML(t *testing.T) {
	inTempDir(t)
	writeFile(t, YAMLFile, "root: from-yaml\n")
	writeFile(t, TOMLFile, "root = \"from-toml\"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != "from-yaml" {
		t.Errorf("Root = %q, want from-yaml", cfg.Root)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "release.toml")
	writeFile(t, path, "manifest = \"manifest.json\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Manifest != "manifest.json" {
		t.Errorf("Manifest = %q", cfg.Manifest)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{"unknown yaml key", YAMLFile, "rooot: packages\n", "failed to parse config"},
		{"invalid yaml", YAMLFile, "root: [unterminated\n", "failed to parse config"},
		{"unknown toml key", TOMLFile, "rooot = \"packages\"\n", "failed to parse config"},
		{"invalid toml", TOMLFile, "root = \n", "failed to parse config"},
		{"negative max tries", YAMLFile, "max_tries: -1\n", "max_tries must be >= 0"},
		{"template without version", YAMLFile, "tag:\n  template: release-{name}\n", "must contain {version}"},
		{"empty publish command", YAMLFile, "publish:\n  command: []\n", "publish.command must not be empty"},
		{"unknown theme", YAMLFile, "theme: neon\n", "unknown theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			writeFile(t, tt.file, tt.content)

			cfg, err := Load("")
			if err == nil {
				t.Fatalf("expected error, got config %+v", cfg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	inTempDir(t)

	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_DirectoryNamedLikeConfigIsIgnored(t *testing.T) {
	inTempDir(t)
	if err := os.Mkdir(YAMLFile, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

/* ------------------------------------------------------------------------- */
/* ENVIRONMENT                                                               */
/* ------------------------------------------------------------------------- */

func TestLoad_EnvOverridesFile(t *testing.T) {
	inTempDir(t)
	writeFile(t, YAMLFile, "root: libs\ngit:\n  remote: upstream\n")
	t.Setenv(EnvRoot, "./other/")
	t.Setenv(EnvRemote, "mirror")
	t.Setenv(EnvMaxTries, "1")
	t.Setenv(EnvNoColor, "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != "other" {
		t.Errorf("Root = %q, want other", cfg.Root)
	}
	if cfg.Git.Remote != "mirror" {
		t.Errorf("Git.Remote = %q, want mirror", cfg.Git.Remote)
	}
	if cfg.MaxTries != 1 {
		t.Errorf("MaxTries = %d, want 1", cfg.MaxTries)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want true")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{EnvMaxTries, "three"},
		{EnvMaxTries, "-2"},
		{EnvNoColor, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.env+"="+tt.value, func(t *testing.T) {
			inTempDir(t)
			t.Setenv(tt.env, tt.value)

			if _, err := Load(""); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

/* ------------------------------------------------------------------------- */
/* CONVERSION                                                                */
/* ------------------------------------------------------------------------- */

func TestReleaseOptions(t *testing.T) {
	cfg := Default()
	cfg.Tag.Push = false
	cfg.SetRemote("upstream")

	opts := cfg.ReleaseOptions()
	if opts.Push {
		t.Error("Push = true, want false")
	}
	if opts.Remote != "upstream" {
		t.Errorf("Remote = %q, want upstream", opts.Remote)
	}
	if opts.TagTemplate != "{name}@{version}" {
		t.Errorf("TagTemplate = %q", opts.TagTemplate)
	}
	if !reflect.DeepEqual(opts.PublishCommand, []string{"npm", "run", "test", "--prefix", "{dir}"}) {
		t.Errorf("PublishCommand = %v", opts.PublishCommand)
	}
}
