package discovery

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkgrel/pkgrel/internal/core"
	"github.com/pkgrel/pkgrel/internal/manifest"
)

// Locator finds packages below a root directory.
type Locator struct {
	fs           core.FileSystem
	reader       *manifest.Reader
	manifestName string
}

// NewLocator creates a Locator. An empty manifestName means package.json.
func NewLocator(fs core.FileSystem, manifestName string) *Locator {
	if manifestName == "" {
		manifestName = manifest.DefaultFilename
	}
	return &Locator{
		fs:           fs,
		reader:       manifest.NewReader(fs),
		manifestName: manifestName,
	}
}

// Locate returns a Package for every immediate subdirectory of root that
// contains a valid manifest, ordered by directory name. Subdirectories
// without one are skipped. It fails with *Error only when root itself
// cannot be read.
func (l *Locator) Locate(ctx context.Context, root string) ([]Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := l.fs.ReadDir(ctx, root)
	if err != nil {
		return nil, &Error{Root: root, Err: err}
	}

	packages := make([]Package, 0, len(entries))
	for _, entry := range entries {
		if !l.isDir(ctx, root, entry) {
			continue
		}

		pkg, err := l.Load(ctx, filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		packages = append(packages, pkg)
	}

	slices.SortFunc(packages, func(a, b Package) int {
		return strings.Compare(a.Dir, b.Dir)
	})
	return packages, nil
}

// Load reads the package whose manifest lives directly in dir.
func (l *Locator) Load(ctx context.Context, dir string) (Package, error) {
	manifestPath := filepath.Join(dir, l.manifestName)
	m, err := l.reader.Read(ctx, manifestPath)
	if err != nil {
		return Package{}, err
	}
	return Package{
		Name:         m.Name,
		Version:      m.Version,
		ManifestPath: manifestPath,
		Dir:          dir,
	}, nil
}

// isDir reports whether entry is a directory, following symlinks.
func (l *Locator) isDir(ctx context.Context, root string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := l.fs.Stat(ctx, filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}
