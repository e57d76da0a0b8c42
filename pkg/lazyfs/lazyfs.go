// Package lazyfs provides lazy, error-ignoring directory listings.
//
// A listing never reports an error. If the directory cannot be opened the
// listing is empty; if a single entry cannot be read it is left out; the
// caller cannot tell these cases apart. Use it for best-effort scans such as
// previews or optional cleanup, never where a complete listing matters.
//
// Basic Usage:
//
//	for entry := range lazyfs.ReadDir("path/to/directory").All() {
//	    fmt.Println("Got entry", entry.Path)
//	}
//
// If the directory does not exist or is not readable, nothing is printed.
package lazyfs

import (
	"iter"
	"os"
	"time"

	"github.com/joe/lazyfs/pkg/filesystem"
)

// Entry is one child of a listed directory.
type Entry struct {
	// Path is the parent path joined with Name
	Path string

	// Name is the base name of the entry
	Name string

	// Size is the size in bytes as reported by the source
	Size int64

	// Mode holds the type and permission bits
	Mode os.FileMode

	// ModTime is the modification time
	ModTime time.Time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Mode.IsDir()
}

// readerState is the state of a DirReader.
type readerState int

const (
	// stateFailed: open failed, the listing ended, or the reader was closed.
	stateFailed readerState = iota
	// stateOpened: handle is live and positioned somewhere in the listing.
	stateOpened
)

// DirReader is a lazy, finite, non-restartable sequence of directory entries.
// It is not safe for concurrent use.
type DirReader struct {
	state  readerState
	handle filesystem.DirHandle
	dir    string
	join   func(elem ...string) string
}

// ReadDir opens path on the local filesystem. It never fails: if the
// directory cannot be opened, the returned reader produces no entries.
func ReadDir(path string) *DirReader {
	return ReadDirFS(filesystem.NewRealFileSystem(), path)
}

// ReadDirFS is ReadDir over any directory source.
func ReadDirFS(fsys filesystem.FileSystem, path string) *DirReader {
	handle, err := fsys.OpenDir(path)
	if err != nil {
		return &DirReader{state: stateFailed}
	}

	return &DirReader{
		state:  stateOpened,
		handle: handle,
		dir:    path,
		join:   fsys.Join,
	}
}

// All returns the remaining entries as a range-over-func sequence.
// Breaking out of the loop closes the reader.
func (r *DirReader) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			entry, ok := r.Next()
			if !ok {
				return
			}

			if !yield(entry) {
				_ = r.Close()
				return
			}
		}
	}
}

// Close releases the directory handle. Subsequent calls to Next produce
// nothing. Close is idempotent and always returns nil.
func (r *DirReader) Close() error {
	if r.state != stateOpened {
		return nil
	}

	_ = r.handle.Close()
	r.handle = nil
	r.state = stateFailed

	return nil
}

// Next returns the next entry. It returns (Entry{}, false) once the listing is
// over, and keeps doing so on every later call.
// Entries whose metadata cannot be read are skipped.
func (r *DirReader) Next() (Entry, bool) {
	for r.state == stateOpened {
		info, err := r.handle.Next()
		if err == nil {
			return r.entry(info), true
		}

		if isEndOfListing(err) {
			_ = r.Close()
		}
	}

	return Entry{}, false
}

// entry converts source metadata into an Entry under r's directory.
func (r *DirReader) entry(info os.FileInfo) Entry {
	return Entry{
		Path:    r.join(r.dir, info.Name()),
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
}

// Collect drains r and returns the entries in listing order.
func Collect(r *DirReader) []Entry {
	entries := make([]Entry, 0)
	for entry := range r.All() {
		entries = append(entries, entry)
	}

	return entries
}
