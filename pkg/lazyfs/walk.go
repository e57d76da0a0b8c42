package lazyfs

import (
	"iter"
	"os"
	"time"

	krfs "github.com/kr/fs"

	"github.com/joe/lazyfs/pkg/filesystem"
)

// TreeWalker is a lenient pre-order walk over a directory tree.
// Unreadable directories read as empty and entries that cannot be stat'ed are
// skipped, exactly like a DirReader. A symlinked root is followed; symlinks
// inside the tree are produced as entries but not descended into.
type TreeWalker struct {
	walker   *krfs.Walker
	rootSeen bool
	done     bool
}

// Walk starts a walk below root. The root itself is not produced.
func Walk(fsys filesystem.FileSystem, root string) *TreeWalker {
	return &TreeWalker{
		walker: krfs.WalkFS(root, lenientFS{fsys: fsys, root: root}),
	}
}

// All returns the remaining entries as a range-over-func sequence.
func (w *TreeWalker) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			entry, ok := w.Next()
			if !ok || !yield(entry) {
				return
			}
		}
	}
}

// Next returns the next entry in the tree, or (Entry{}, false) when the walk
// is over.
func (w *TreeWalker) Next() (Entry, bool) {
	for !w.done {
		if !w.walker.Step() {
			w.done = true
			break
		}

		if w.walker.Err() != nil {
			continue
		}

		if !w.rootSeen {
			w.rootSeen = true
			continue
		}

		info := w.walker.Stat()

		return Entry{
			Path:    w.walker.Path(),
			Name:    info.Name(),
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}, true
	}

	return Entry{}, false
}

// SkipDir stops the walk from descending into the directory most recently
// returned by Next. It has no effect for files.
func (w *TreeWalker) SkipDir() {
	w.walker.SkipDir()
}

// lenientFS adapts a FileSystem to kr/fs, listing directories through DirReader
// so that ReadDir never fails. The root is resolved through symlinks, the same
// way ReadDir opens it; symlinks below the root are not followed.
type lenientFS struct {
	fsys filesystem.FileSystem
	root string
}

func (l lenientFS) Join(elem ...string) string {
	return l.fsys.Join(elem...)
}

func (l lenientFS) Lstat(name string) (os.FileInfo, error) {
	if name == l.root {
		return l.fsys.Stat(name) //nolint:wrapcheck // Errors are dropped by TreeWalker.Next
	}

	return l.fsys.Lstat(name) //nolint:wrapcheck // Errors are dropped by TreeWalker.Next
}

func (l lenientFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	infos := make([]os.FileInfo, 0)
	for entry := range ReadDirFS(l.fsys, dirname).All() {
		infos = append(infos, entryInfo{entry: entry})
	}

	return infos, nil
}

// entryInfo exposes an Entry as os.FileInfo.
type entryInfo struct {
	entry Entry
}

func (i entryInfo) Name() string       { return i.entry.Name }
func (i entryInfo) Size() int64        { return i.entry.Size }
func (i entryInfo) Mode() os.FileMode  { return i.entry.Mode }
func (i entryInfo) ModTime() time.Time { return i.entry.ModTime }
func (i entryInfo) IsDir() bool        { return i.entry.IsDir() }
func (i entryInfo) Sys() any           { return nil }
