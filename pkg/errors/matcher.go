package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are tried in order; the first match wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []matchRule{
			{CategoryAuth, []string{
				"unable to authenticate",
				"no supported methods remain",
				"no ssh authentication methods",
				"handshake failed",
			}},
			{CategoryConnection, []string{
				"connection refused",
				"no such host",
				"i/o timeout",
				"network is unreachable",
				"ssh connection failed",
				"sftp session creation failed",
			}},
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryPath, []string{
				"sftp url must include",
				"invalid sftp url",
				"invalid port number",
				"no such file or directory",
			}},
		},
	}
}

// matchRule maps substrings to a category.
type matchRule struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	rules []matchRule
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
