package listing

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// RunLog is an optional debug log file. A nil *RunLog discards everything.
type RunLog struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// OpenRunLog opens (appending) or creates the log file at logPath.
func OpenRunLog(logPath string) (*RunLog, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	runLog := &RunLog{file: f, now: time.Now}
	runLog.Printf("=== Run Started: %s ===", runLog.now().Format(time.RFC3339))

	return runLog, nil
}

// Close writes the end marker and closes the file.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}

	l.Printf("=== Run Ended: %s ===", l.now().Format(time.RFC3339))

	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.file.Close()
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	return nil
}

// Printf writes one timestamped line. Write errors are ignored; the log is
// for debugging only.
func (l *RunLog) Printf(format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(l.file, "[%s] %s\n", l.now().Format("15:04:05.000"), line)
}
