// Package main is the entry point for the lazyls application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/lazyfs/internal/config"
	"github.com/joe/lazyfs/internal/listing"
	pkgerrors "github.com/joe/lazyfs/pkg/errors"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		reportErrors(os.Stderr, err)
		os.Exit(1)
	}

	colored := useColor(cfg.Color, term.IsTerminal(int(os.Stdout.Fd())))

	os.Exit(run(cfg, os.Stdout, os.Stderr, colored))
}

// run lists every configured path and returns the process exit code.
// Empty or unreadable listings still exit 0; only unreachable roots fail.
func run(cfg *config.Config, stdout, stderr io.Writer, colored bool) int {
	runLog, err := openRunLog(cfg.LogFile)
	if err != nil {
		reportErrors(stderr, err)
		return 1
	}

	defer func() {
		_ = runLog.Close()
	}()

	lister := listing.NewLister(stdout)
	lister.Filter = listing.NewGlobFilter(cfg.Match)
	lister.Styles = listing.NewStyles(stdout, colored)
	lister.Log = runLog
	lister.Recursive = cfg.Recursive
	lister.Long = cfg.Long

	_, err = lister.Run(cfg.Paths)
	if err != nil {
		reportErrors(stderr, err)
		return 1
	}

	return 0
}

func openRunLog(path string) (*listing.RunLog, error) {
	if path == "" {
		return nil, nil //nolint:nilnil // A nil RunLog is a valid no-op log
	}

	return listing.OpenRunLog(path)
}

// reportErrors prints each failure with its suggestions.
func reportErrors(w io.Writer, err error) {
	errs := []error{err}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs = joined.Unwrap()
	}

	enricher := pkgerrors.NewEnricher()

	for _, e := range errs {
		enriched := enricher.Enrich(e, "")
		fmt.Fprintf(w, "Error: %v\n", enriched)

		if suggestions := pkgerrors.FormatSuggestions(enriched); suggestions != "" {
			fmt.Fprintln(w, suggestions)
		}
	}
}

// useColor decides whether output gets ANSI styling.
func useColor(mode config.ColorMode, isTTY bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	case config.ColorAuto:
		return isTTY
	}

	return isTTY
}
