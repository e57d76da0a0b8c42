package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryAuth:
		return g.generateAuthSuggestions(affectedPath)
	case CategoryConnection:
		return g.generateConnectionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateAuthSuggestions(_ string) []string {
	return []string{
		"Start an SSH agent and add your key with 'ssh-add'",
		"Or place an unencrypted key at ~/.ssh/id_ed25519, ~/.ssh/id_rsa or ~/.ssh/id_ecdsa",
		"Check that the remote user name in the URL is correct",
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions(target string) []string {
	suggestions := []string{
		"Verify the host name and port in the URL",
		"Check that an SSH server with the SFTP subsystem is running on the host",
	}

	if target != "" {
		suggestions = append(suggestions, fmt.Sprintf("Test the connection with 'sftp %s'", target))
	}

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Remote paths use the form sftp://user@host[:port]/path",
		"Use a double slash for absolute remote paths: sftp://user@host//var/log",
	}

	if path != "" {
		suggestions = append(suggestions, "Check the spelling of: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	if path != "" {
		return []string{
			fmt.Sprintf("Check permissions with 'ls -la %s'", path),
			"Choose a location you can write to",
		}
	}

	return []string{
		"Check permissions with 'ls -la' on the affected path",
		"Choose a location you can write to",
	}
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run 'lazyls --help' to review the available options",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the target is accessible: "+path)
	}

	return suggestions
}
