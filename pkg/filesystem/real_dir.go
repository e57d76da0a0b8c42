package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// unexported constants.
const (
	defaultBatchSize = 64
)

// realDirHandle implements DirHandle over an open *os.File.
// Entries are read from the OS in small batches, only when the buffer runs dry.
type realDirHandle struct {
	file      *os.File
	batchSize int
	pending   []os.DirEntry
	readErr   error // error returned alongside the last batch, reported after it drains
	done      bool
}

// newRealDirHandle wraps an open directory.
func newRealDirHandle(file *os.File, batchSize int) *realDirHandle {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &realDirHandle{
		file:      file,
		batchSize: batchSize,
	}
}

// Close closes the underlying directory file.
func (h *realDirHandle) Close() error {
	h.done = true
	h.pending = nil

	err := h.file.Close()
	if err != nil {
		return fmt.Errorf("failed to close directory %s: %w", h.file.Name(), err)
	}

	return nil
}

// Next returns the next entry's metadata.
// A failed Info call is a per-slot error: the entry was listed but vanished
// or could not be stat'ed before we got to it.
func (h *realDirHandle) Next() (os.FileInfo, error) {
	if len(h.pending) == 0 {
		err := h.fill()
		if err != nil {
			return nil, err
		}
	}

	entry := h.pending[0]
	h.pending = h.pending[1:]

	info, err := entry.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to stat entry %s: %w", entry.Name(), err)
	}

	return info, nil
}

// fill reads the next batch from the OS.
// Returns io.EOF once the listing is over. A read error is reported once,
// after any entries that came with it, and then the handle reports io.EOF.
func (h *realDirHandle) fill() error {
	for len(h.pending) == 0 {
		if h.readErr != nil {
			err := h.readErr
			h.readErr = nil
			h.done = true

			return fmt.Errorf("failed to read directory %s: %w", h.file.Name(), err)
		}

		if h.done {
			return io.EOF
		}

		entries, err := h.file.ReadDir(h.batchSize)
		h.pending = entries

		if errors.Is(err, io.EOF) {
			h.done = true
		} else if err != nil {
			h.readErr = err
		}
	}

	return nil
}
