package listing

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// unexported constants.
const (
	dimColorCode = "241"
	dirColorCode = "39"
)

// Styles renders entry names and metadata, or passes them through unchanged
// when styling is off.
type Styles struct {
	enabled bool
	dir     lipgloss.Style
	dim     lipgloss.Style
}

// NewStyles creates styles that write ANSI colors to out when enabled.
func NewStyles(out io.Writer, enabled bool) *Styles {
	renderer := lipgloss.NewRenderer(out)
	if enabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		enabled: enabled,
		dir: renderer.NewStyle().
			Foreground(lipgloss.Color(dirColorCode)).
			Bold(true),
		dim: renderer.NewStyle().
			Foreground(lipgloss.Color(dimColorCode)),
	}
}

// Dir renders a directory name.
func (s *Styles) Dir(text string) string {
	if !s.enabled {
		return text
	}

	return s.dir.Render(text)
}

// Dim renders secondary text such as sizes and times.
func (s *Styles) Dim(text string) string {
	if !s.enabled {
		return text
	}

	return s.dim.Render(text)
}
