package manifest

import (
	"context"
	"fmt"

	"github.com/pkgrel/pkgrel/internal/core"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DefaultFilename is the manifest looked up in each package directory.
const DefaultFilename = "package.json"

const (
	nameField    = "name"
	versionField = "version"
)

// Manifest is the subset of a manifest pkgrel cares about.
type Manifest struct {
	Name    string
	Version string
}

// WriteError is returned when a version cannot be persisted to a manifest.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write version to %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// indentOptions matches the layout npm itself writes: two spaces, every
// array and object expanded, keys in their original order.
var indentOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Reader reads manifests through a core.FileSystem.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read parses the manifest at path. Both name and version must be present
// as strings, and name must not be empty.
func (r *Reader) Read(ctx context.Context, path string) (Manifest, error) {
	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse extracts name and version from manifest bytes. path is used in
// error messages only.
func Parse(data []byte, path string) (Manifest, error) {
	if !gjson.ValidBytes(data) {
		return Manifest{}, fmt.Errorf("invalid JSON in %q", path)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Manifest{}, fmt.Errorf("manifest %q is not a JSON object", path)
	}

	name := doc.Get(nameField)
	if name.Type != gjson.String || name.Str == "" {
		return Manifest{}, fmt.Errorf("manifest %q has no %q string field", path, nameField)
	}

	version := doc.Get(versionField)
	if version.Type != gjson.String {
		return Manifest{}, fmt.Errorf("manifest %q has no %q string field", path, versionField)
	}

	return Manifest{Name: name.Str, Version: version.Str}, nil
}

// Writer persists versions into manifests.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// SetVersion performs a full read-modify-write of the manifest at path,
// replacing its version. All failures are reported as *WriteError.
func (w *Writer) SetVersion(ctx context.Context, path, version string) error {
	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	updated, err := SetVersionBytes(data, version)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := w.fs.WriteFile(ctx, path, updated, core.PermFile); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// SetVersionBytes returns data with its version field replaced and the
// document re-indented.
func SetVersionBytes(data []byte, version string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("manifest is not a JSON object")
	}

	updated, err := sjson.SetBytes(data, versionField, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set version: %w", err)
	}

	updated = pretty.PrettyOptions(updated, indentOptions)
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}
