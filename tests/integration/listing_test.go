//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/lazyfs/internal/listing"
	"github.com/joe/lazyfs/pkg/filesystem"
	"github.com/joe/lazyfs/pkg/lazyfs"
)

// TestIntegration_LargeDirectory_ListsEverything verifies that a directory much
// larger than one read batch comes out complete and without duplicates.
func TestIntegration_LargeDirectory_ListsEverything(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()

	const fileCount = 1000

	for i := range fileCount {
		path := filepath.Join(dir, "file"+strings.Repeat("x", i%7)+"-"+strconv.Itoa(i)+".txt")
		g.Expect(os.WriteFile(path, []byte("content"), 0o644)).To(Succeed())
	}

	seen := make(map[string]bool)

	for entry := range lazyfs.ReadDir(dir).All() {
		g.Expect(seen[entry.Name]).To(BeFalse(), "duplicate entry %s", entry.Name)
		seen[entry.Name] = true
		g.Expect(entry.Size).To(Equal(int64(len("content"))))
	}

	g.Expect(seen).To(HaveLen(fileCount))
}

// TestIntegration_RecursiveListing_FiltersTree runs the lister over a real tree
// with a glob filter, the way the command does.
func TestIntegration_RecursiveListing_FiltersTree(t *testing.T) {
	g := NewWithT(t)

	root := t.TempDir()
	g.Expect(os.MkdirAll(filepath.Join(root, "src", "pkg"), 0o755)).To(Succeed())
	g.Expect(os.MkdirAll(filepath.Join(root, "docs"), 0o755)).To(Succeed())

	for _, rel := range []string{"src/main.go", "src/pkg/lib.go", "docs/guide.md", "README.md"} {
		g.Expect(os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), nil, 0o644)).To(Succeed())
	}

	var out bytes.Buffer

	lister := listing.NewLister(&out)
	lister.Recursive = true
	lister.Filter = listing.NewGlobFilter("**/*.go")

	results, err := lister.Run([]string{root})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(results[0].Shown).To(Equal(2))
	g.Expect(strings.Fields(out.String())).To(ConsistOf(
		filepath.Join(root, "src", "main.go"),
		filepath.Join(root, "src", "pkg", "lib.go"),
	))
}

// TestIntegration_ChangingDirectory_NeverFails verifies that deleting entries
// while a listing is in progress never stops or breaks the listing.
func TestIntegration_ChangingDirectory_NeverFails(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()

	const fileCount = 300

	for i := range fileCount {
		g.Expect(os.WriteFile(filepath.Join(dir, "f"+strconv.Itoa(i)), nil, 0o644)).To(Succeed())
	}

	reader := lazyfs.ReadDirFS(filesystem.NewRealFileSystem(), dir)

	defer func() {
		_ = reader.Close()
	}()

	count := 0

	for entry := range reader.All() {
		count++

		if count%2 == 0 {
			_ = os.Remove(entry.Path)
		}
	}

	g.Expect(count).To(BeNumerically(">", 0))
	g.Expect(count).To(BeNumerically("<=", fileCount))
}
