// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/lazyfs/pkg/filesystem"
)

// ColorMode controls when directory names are styled.
type ColorMode int

const (
	// ColorAuto styles output only when stdout is a terminal
	ColorAuto ColorMode = iota
	// ColorAlways styles output unconditionally
	ColorAlways
	// ColorNever never styles output
	ColorNever
)

// Exported variables.
var (
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// String returns the string representation of ColorMode
func (cm ColorMode) String() string {
	switch cm {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "yes", "on":
		return ColorAlways, nil
	case "never", "no", "off":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (cm *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}

	*cm = parsed

	return nil
}

// Config holds the application configuration
type Config struct {
	Paths     []string  `arg:"positional" help:"Directories to list: local paths or sftp://user@host[:port]/path (default: .)"`
	Recursive bool      `arg:"-r,--recursive" help:"Walk subdirectories too"`
	Match     string    `arg:"-m,--match" help:"Only show entries matching this glob (case-insensitive, ** allowed)"`
	Long      bool      `arg:"-l,--long" help:"Show mode, size and modification time"`
	Color     ColorMode `arg:"--color" default:"auto" help:"Style directory names: auto|always|never"`
	LogFile   string    `arg:"--log" help:"Append a debug log of the run to this file"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Lists directories on a best-effort basis. Missing or unreadable directories list as empty."
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "lazyls 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// Parse parses args (without the program name) into a configuration.
// Help and version requests come back as arg.ErrHelp and arg.ErrVersion.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: "lazyls"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)
	if err != nil {
		return nil, err //nolint:wrapcheck // go-arg sentinels (ErrHelp, ErrVersion) must stay comparable
	}

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies defaults and validation to a parsed config.
// Local paths are never checked: a missing directory is an empty listing.
func PostProcessConfig(cfg *Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	if cfg.Match != "" && !doublestar.ValidatePattern(strings.ToLower(cfg.Match)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, cfg.Match)
	}

	for _, p := range cfg.Paths {
		if _, err := filesystem.ParsePath(p); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for validation loops
			return nil, fmt.Errorf("invalid path %s: %w", p, err)
		}
	}

	return cfg, nil
}
