package filesystem

import (
	"fmt"
	"io"
	"os"
	"path"
)

// sftpLister is the part of *sftp.Client that listings need.
type sftpLister interface {
	ReadDir(p string) ([]os.FileInfo, error)
	Lstat(p string) (os.FileInfo, error)
	Stat(p string) (os.FileInfo, error)
}

// SFTPFileSystem implements FileSystem for SFTP connections.
// Remote paths always use forward slashes.
type SFTPFileSystem struct {
	client sftpLister
}

// NewSFTPFileSystem creates a new SFTP filesystem using an established connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{client: conn.Client()}
}

// Join joins remote path elements with forward slashes.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns remote file information without following symlinks.
func (fs *SFTPFileSystem) Lstat(p string) (os.FileInfo, error) {
	info, err := fs.client.Lstat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", p, err)
	}

	return info, nil
}

// Stat returns remote file information, following symlinks.
func (fs *SFTPFileSystem) Stat(p string) (os.FileInfo, error) {
	info, err := fs.client.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", p, err)
	}

	return info, nil
}

// OpenDir lists a remote directory.
// The SFTP protocol returns names in READDIR batches, so the listing is
// fetched here and then served one entry at a time.
func (fs *SFTPFileSystem) OpenDir(p string) (DirHandle, error) {
	infos, err := fs.client.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote directory %s: %w", p, err)
	}

	return &sftpDirHandle{infos: infos}, nil
}

// sftpDirHandle serves a fetched remote listing.
type sftpDirHandle struct {
	infos []os.FileInfo
	index int
}

// Close drops the buffered listing.
func (h *sftpDirHandle) Close() error {
	h.infos = nil
	h.index = 0

	return nil
}

// Next returns the next remote entry.
func (h *sftpDirHandle) Next() (os.FileInfo, error) {
	if h.index >= len(h.infos) {
		return nil, io.EOF
	}

	info := h.infos[h.index]
	h.index++

	if info == nil {
		return nil, fmt.Errorf("failed to read remote entry %d: %w", h.index-1, os.ErrInvalid)
	}

	return info, nil
}
