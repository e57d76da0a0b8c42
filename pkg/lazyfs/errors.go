package lazyfs

import (
	"errors"
	"io"
	"os"
)

// isEndOfListing reports whether err from a DirHandle ends the listing.
// Everything else is a bad slot and is skipped.
func isEndOfListing(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed)
}
