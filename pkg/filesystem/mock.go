package filesystem

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths are slash separated. Failures can be injected per directory (open)
// and per entry (metadata read during listing).
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string]*mockFile
	openErrs   map[string]error
	entryErrs  map[string]error
	openCount  int
	closeCount int
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	path    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() any           { return nil }

func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return fi.perm | os.ModeDir
	}

	return fi.perm
}

// mockDirHandle serves a snapshot of a directory's children.
type mockDirHandle struct {
	fs     *MockFileSystem
	dir    string
	names  []string
	index  int
	closed bool
}

// Close marks the handle closed. Closing twice is an error, like *os.File.
func (h *mockDirHandle) Close() error {
	if h.closed {
		return os.ErrClosed
	}
	h.closed = true

	h.fs.mu.Lock()
	h.fs.closeCount++
	h.fs.mu.Unlock()

	return nil
}

// Next returns the next child in name order, or the injected error for it.
func (h *mockDirHandle) Next() (os.FileInfo, error) {
	if h.closed {
		return nil, os.ErrClosed
	}

	if h.index >= len(h.names) {
		return nil, io.EOF
	}

	childPath := path.Join(h.dir, h.names[h.index])
	h.index++

	h.fs.mu.RLock()
	defer h.fs.mu.RUnlock()

	if err := h.fs.entryErrs[childPath]; err != nil {
		return nil, fmt.Errorf("failed to stat entry %s: %w", childPath, err)
	}

	file, exists := h.fs.files[childPath]
	if !exists {
		// Removed after the directory was opened.
		return nil, fmt.Errorf("failed to stat entry %s: %w", childPath, os.ErrNotExist)
	}

	return file.info(), nil
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:     make(map[string]*mockFile),
		openErrs:  make(map[string]error),
		entryErrs: make(map[string]error),
	}
}

// Join joins path elements with forward slashes.
func (fs *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns file information.
func (fs *MockFileSystem) Lstat(name string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	name = path.Clean(name)
	if err := fs.entryErrs[name]; err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	file, exists := fs.files[name]
	if !exists {
		return nil, fmt.Errorf("failed to stat %s: %w", name, os.ErrNotExist)
	}

	return file.info(), nil
}

// Stat is Lstat; the mock tree has no symlinks.
func (fs *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	return fs.Lstat(name)
}

// OpenDir snapshots the children of dir and returns a handle over them.
func (fs *MockFileSystem) OpenDir(dir string) (DirHandle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir = path.Clean(dir)
	if err := fs.openErrs[dir]; err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}

	file, exists := fs.files[dir]
	if !exists {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, os.ErrNotExist)
	}

	if !file.isDir {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, ErrNotDirectory)
	}

	fs.openCount++

	return &mockDirHandle{
		fs:    fs,
		dir:   dir,
		names: fs.childrenLocked(dir),
	}, nil
}

// Helper methods for testing

// AddDir adds a directory (and any missing parents) to the mock filesystem.
func (fs *MockFileSystem) AddDir(name string, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.mkdirAllLocked(path.Clean(name), modTime)
}

// AddFile adds a file of the given size, creating parent directories as needed.
func (fs *MockFileSystem) AddFile(name string, size int64, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name = path.Clean(name)
	fs.mkdirAllLocked(path.Dir(name), modTime)

	fs.files[name] = &mockFile{
		path:    name,
		size:    size,
		modTime: modTime,
		perm:    0o644,
	}
}

// CloseCount returns how many directory handles have been closed.
func (fs *MockFileSystem) CloseCount() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.closeCount
}

// FailEntry makes metadata reads of name fail with err, both when listed
// through its parent and when passed to Lstat.
func (fs *MockFileSystem) FailEntry(name string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.entryErrs[path.Clean(name)] = err
}

// FailOpen makes OpenDir(name) fail with err.
func (fs *MockFileSystem) FailOpen(name string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.openErrs[path.Clean(name)] = err
}

// OpenDirCount returns how many directory handles have been opened.
func (fs *MockFileSystem) OpenDirCount() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.openCount
}

// Remove deletes name and everything below it.
func (fs *MockFileSystem) Remove(name string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name = path.Clean(name)
	for p := range fs.files {
		if p == name || strings.HasPrefix(p, name+"/") {
			delete(fs.files, p)
		}
	}
}

// childrenLocked returns the sorted base names of dir's direct children.
func (fs *MockFileSystem) childrenLocked(dir string) []string {
	names := make([]string, 0)

	for p := range fs.files {
		if p == dir || path.Dir(p) != dir {
			continue
		}

		names = append(names, path.Base(p))
	}

	sort.Strings(names)

	return names
}

// mkdirAllLocked creates dir and its parents. Assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(dir string, modTime time.Time) {
	if _, exists := fs.files[dir]; exists {
		return
	}

	parent := path.Dir(dir)
	if parent != dir {
		fs.mkdirAllLocked(parent, modTime)
	}

	fs.files[dir] = &mockFile{
		path:    dir,
		modTime: modTime,
		isDir:   true,
		perm:    0o755,
	}
}

func (f *mockFile) info() os.FileInfo {
	return &mockFileInfo{
		name:    path.Base(f.path),
		size:    f.size,
		modTime: f.modTime,
		isDir:   f.isDir,
		perm:    f.perm,
	}
}
