package listing

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// EntryFilter decides which listed entries are printed.
type EntryFilter interface {
	// ShouldInclude returns true if the entry at the given relative path should be shown
	ShouldInclude(relativePath string) bool
}

// GlobFilter implements EntryFilter using glob patterns
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewGlobFilter creates a new GlobFilter with the given pattern
// Empty pattern matches all entries
func NewGlobFilter(pattern string) *GlobFilter {
	return &GlobFilter{
		normalizedPattern: strings.ToLower(pattern),
		isEmpty:           pattern == "",
	}
}

// ShouldInclude returns true if the entry should be shown based on the glob pattern.
// Matching is case-insensitive and uses forward slashes.
func (f *GlobFilter) ShouldInclude(relativePath string) bool {
	if f.isEmpty {
		return true
	}

	matched, err := doublestar.Match(f.normalizedPattern, strings.ToLower(relativePath))
	if err != nil {
		return false
	}

	return matched
}
