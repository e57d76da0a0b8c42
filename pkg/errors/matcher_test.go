//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package errors_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	pkgerrors "github.com/joe/lazyfs/pkg/errors"
)

func TestPatternMatcher_FirstRuleWins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := pkgerrors.NewPatternMatcher()

	// Mentions both a failed SSH connection and an auth failure; auth is more specific.
	g.Expect(matcher.Match("SSH connection failed: ssh: unable to authenticate")).
		To(Equal(pkgerrors.CategoryAuth))
	g.Expect(matcher.Match("PERMISSION DENIED")).To(Equal(pkgerrors.CategoryPermission))
	g.Expect(matcher.Match("")).To(Equal(pkgerrors.CategoryUnknown))
}

func TestSuggestionGenerator_IncludesPath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	generator := pkgerrors.NewSuggestionGenerator()

	g.Expect(generator.Generate(pkgerrors.CategoryConnection, "joe@box:22")).
		To(ContainElement("Test the connection with 'sftp joe@box:22'"))
	g.Expect(generator.Generate(pkgerrors.CategoryPermission, "/var/log/x.log")).
		To(ContainElement("Check permissions with 'ls -la /var/log/x.log'"))
	g.Expect(generator.Generate(pkgerrors.ErrorCategory("made-up"), "")).
		To(Equal(generator.Generate(pkgerrors.CategoryUnknown, "")))
}
