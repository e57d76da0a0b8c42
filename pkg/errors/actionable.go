// Package errors turns the CLI's own failures into errors with suggestions.
//
// Listings never fail, so nothing here is used by the reader. What can fail is
// everything around it: parsing an sftp:// URL, connecting and authenticating
// over SSH, or creating the debug log file.
//
//	enricher := errors.NewEnricher()
//	_, _, _, err := filesystem.CreateFileSystem("sftp://joe@box/data")
//	if err != nil {
//	    err = enricher.Enrich(err, "sftp://joe@box/data")
//	    fmt.Fprintln(os.Stderr, err)
//	    fmt.Fprintln(os.Stderr, errors.FormatSuggestions(err))
//	}
package errors

import (
	"errors"
	"strings"
)

// Exported constants.
const (
	CategoryAuth       ErrorCategory = "auth"
	CategoryConnection ErrorCategory = "connection"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	Unwrap() error
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError wrapping err.
func NewActionableError(
	err error,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		err:          err,
		category:     category,
		suggestions:  suggestions,
		affectedPath: affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted
// list. Returns empty string if err carries no suggestions.
func FormatSuggestions(err error) string {
	var actionable ActionableError
	if !errors.As(err, &actionable) {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder

	builder.WriteString("Try these solutions:")

	for _, suggestion := range suggestions {
		builder.WriteString("\n  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	err          error
	category     ErrorCategory
	suggestions  []string
	affectedPath string
}

// AffectedPath returns the path or URL affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.err.Error()
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the original error.
func (e *actionableError) Unwrap() error {
	return e.err
}
