// Package listing prints best-effort directory listings for the lazyls command.
package listing

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"path"
	"path/filepath"
	"strings"

	"github.com/joe/lazyfs/pkg/filesystem"
	"github.com/joe/lazyfs/pkg/lazyfs"
)

// unexported constants.
const (
	timeLayout = "2006-01-02 15:04"
)

// Opener resolves a path or URL to a directory source.
// filesystem.CreateFileSystem is the production implementation.
type Opener func(pathStr string) (filesystem.FileSystem, string, func(), error)

// Result summarizes one listed root.
type Result struct {
	Root  string
	Shown int
}

// Lister lists roots and writes one line per entry.
type Lister struct {
	Out       io.Writer
	Open      Opener
	Filter    EntryFilter
	Styles    *Styles
	Log       *RunLog
	Recursive bool
	Long      bool
}

// NewLister creates a Lister writing plain text to out and reading from the
// local filesystem or SFTP.
func NewLister(out io.Writer) *Lister {
	return &Lister{
		Out:    out,
		Open:   filesystem.CreateFileSystem,
		Filter: NewGlobFilter(""),
		Styles: NewStyles(out, false),
	}
}

// Run lists every root in order. A root that cannot even be reached (bad URL,
// failed SSH connection) is reported in the returned error and skipped; a root
// that does not exist or cannot be read simply lists nothing.
func (l *Lister) Run(roots []string) ([]Result, error) {
	results := make([]Result, 0, len(roots))

	var errs []error

	for i, root := range roots {
		if len(roots) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(l.Out)
			}

			_, _ = fmt.Fprintf(l.Out, "%s:\n", root)
		}

		shown, err := l.listRoot(root)
		if err != nil {
			l.Log.Printf("root %s: %v", root, err)
			errs = append(errs, err)

			continue
		}

		l.Log.Printf("root %s: %d entries shown", root, shown)
		results = append(results, Result{Root: root, Shown: shown})
	}

	return results, errors.Join(errs...)
}

// listRoot lists a single root and returns how many entries were printed.
func (l *Lister) listRoot(root string) (int, error) {
	fsys, basePath, closer, err := l.Open(root)
	if err != nil {
		return 0, err
	}

	if closer != nil {
		defer closer()
	}

	var entries iter.Seq[lazyfs.Entry]
	if l.Recursive {
		entries = lazyfs.Walk(fsys, basePath).All()
	} else {
		entries = lazyfs.ReadDirFS(fsys, basePath).All()
	}

	shown := 0

	for entry := range entries {
		if !l.Filter.ShouldInclude(relativeTo(basePath, entry.Path)) {
			continue
		}

		_, _ = fmt.Fprintln(l.Out, l.formatEntry(entry))
		shown++
	}

	return shown, nil
}

// formatEntry renders one output line.
func (l *Lister) formatEntry(entry lazyfs.Entry) string {
	name := entry.Path
	if entry.IsDir() {
		name = l.Styles.Dir(name)
	}

	if !l.Long {
		return name
	}

	meta := fmt.Sprintf("%s %10d %s", entry.Mode, entry.Size, entry.ModTime.Format(timeLayout))

	return l.Styles.Dim(meta) + "  " + name
}

// relativeTo returns p relative to root using forward slashes, for filtering.
func relativeTo(root, p string) string {
	root = filepath.ToSlash(filepath.Clean(root))
	p = filepath.ToSlash(p)

	if root == "." {
		return path.Clean(p)
	}

	rel := strings.TrimPrefix(p, root)

	return strings.TrimPrefix(rel, "/")
}
