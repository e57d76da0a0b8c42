// Package filesystem provides the directory sources that listings are read from:
// the local OS, remote SFTP servers, and an in-memory mock for tests.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Exported variables.
var (
	ErrNotDirectory = errors.New("not a directory")
)

// DirHandle is an open directory listing positioned at some offset.
//
// Next returns the next child's metadata. It returns io.EOF when the listing
// is exhausted. Any other error describes a single slot that could not be
// read; the handle stays usable and a later call moves past that slot.
// Implementations must eventually return io.EOF.
type DirHandle interface {
	Next() (os.FileInfo, error)
	Close() error
}

// FileSystem is a source of directory listings.
// This allows the same listing code to run against local, remote and mock trees.
type FileSystem interface {
	// OpenDir opens path as a directory listing.
	// Fails if path does not exist, is not a directory, or cannot be read.
	OpenDir(path string) (DirHandle, error)

	// Lstat returns metadata for path without following a final symlink.
	Lstat(path string) (os.FileInfo, error)

	// Stat returns metadata for path, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Join joins path elements using the source's separator.
	Join(elem ...string) string
}

// RealFileSystem implements FileSystem using the os package.
type RealFileSystem struct {
	batchSize int
}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{batchSize: defaultBatchSize}
}

// Join joins path elements with the OS separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Lstat returns file information without following symlinks.
func (fs *RealFileSystem) Lstat(path string) (os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// Stat returns file information, following symlinks.
func (fs *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// OpenDir opens a local directory for lazy listing.
func (fs *RealFileSystem) OpenDir(path string) (DirHandle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat directory %s: %w", path, err)
	}

	if !info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open directory %s: %w", path, ErrNotDirectory)
	}

	return newRealDirHandle(file, fs.batchSize), nil
}
