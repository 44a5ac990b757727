package log

import (
	"bufio"
	"os"
	"sync"
)

// FileLogger appends CBOR-encoded events to a capture file.
// It is safe for concurrent use.
//
// Data and flow events are buffered; state and error events flush the
// buffer, so a capture read while the client is still running ends on the
// latest state transition or failure.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	buf     *bufio.Writer
	writer  *eventWriter
	closed  bool
	dropped int
}

// NewFileLogger opens path for appending, creating it with mode 0644 if it
// does not exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	return &FileLogger{
		file:   f,
		buf:    buf,
		writer: newEventWriter(buf),
	}, nil
}

// Log appends event. Malformed events and write failures are counted, not
// returned, so capture never disturbs the stream.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.writer.write(event); err != nil {
		l.dropped++
		return
	}
	if event.Category == CategoryState || event.Category == CategoryError {
		l.flushLocked()
	}
}

// Flush writes buffered events to the file.
func (l *FileLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	return l.flushLocked()
}

func (l *FileLogger) flushLocked() error {
	pending := l.buf.Buffered()
	if err := l.buf.Flush(); err != nil {
		// The buffered events are lost; bufio stays failed until Reset.
		if pending > 0 {
			l.dropped++
		}
		l.buf.Reset(l.file)
		return err
	}
	return nil
}

// Dropped returns the number of events that were malformed or could not be
// written. A failed flush counts as one drop.
func (l *FileLogger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close flushes and closes the file. Later Log calls are ignored. Safe to
// call twice.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	flushErr := l.flushLocked()
	if err := l.file.Close(); err != nil {
		return err
	}
	return flushErr
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
