package core

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Directories are implied by the files set in them.
type MockFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool

	// ReadErr, WriteErr and ReadDirErr, when set, are returned by the
	// corresponding operation regardless of the path.
	ReadErr    error
	WriteErr   error
	ReadDirErr error

	// Writes records every path passed to WriteFile, in order.
	Writes []string
}

// NewMockFileSystem creates an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores data at path and registers its parent directories.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	path = filepath.Clean(path)
	m.files[path] = slices.Clone(data)
	m.addDirs(filepath.Dir(path))
}

// SetDir registers an empty directory.
func (m *MockFileSystem) SetDir(path string) {
	m.addDirs(filepath.Clean(path))
}

// GetFile returns the content stored at path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

func (m *MockFileSystem) addDirs(dir string) {
	for {
		m.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func (m *MockFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) WriteFile(_ context.Context, path string, data []byte, _ fs.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes = append(m.Writes, path)
	m.SetFile(path, data)
	return nil
}

func (m *MockFileSystem) ReadDir(_ context.Context, path string) ([]fs.DirEntry, error) {
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	path = filepath.Clean(path)
	if !m.dirs[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry
	for p, data := range m.files {
		if filepath.Dir(p) == path {
			entries = append(entries, mockDirEntry{info: mockFileInfo{name: filepath.Base(p), size: int64(len(data))}})
		}
	}
	for d := range m.dirs {
		if d != path && filepath.Dir(d) == path {
			entries = append(entries, mockDirEntry{info: mockFileInfo{name: filepath.Base(d), dir: true}})
		}
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (m *MockFileSystem) Stat(_ context.Context, path string) (fs.FileInfo, error) {
	path = filepath.Clean(path)
	if data, ok := m.files[path]; ok {
		return mockFileInfo{name: filepath.Base(path), size: int64(len(data))}, nil
	}
	if m.dirs[path] {
		return mockFileInfo{name: filepath.Base(path), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockFileInfo) Name() string { return i.name }
func (i mockFileInfo) Size() int64  { return i.size }
func (i mockFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return PermFile
}
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.dir }
func (i mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	info mockFileInfo
}

func (e mockDirEntry) Name() string               { return e.info.name }
func (e mockDirEntry) IsDir() bool                { return e.info.dir }
func (e mockDirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e mockDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }
