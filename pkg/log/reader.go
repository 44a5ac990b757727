package log

import (
	"os"
	"time"
)

// Filter selects events. Zero-valued fields match everything. A Direction
// criterion never matches events without a direction.
type Filter struct {
	ConnectionID string
	Direction    *Direction
	Category     *Category
	TimeStart    *time.Time
	TimeEnd      *time.Time
}

// Match reports whether event satisfies every criterion of f.
func (f *Filter) Match(event Event) bool {
	if f.ConnectionID != "" && event.ConnectionID != f.ConnectionID {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams events from a capture file.
type Reader struct {
	file    *os.File
	scanner *eventScanner
	filter  Filter
}

// NewReader opens a capture file and reads every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a capture file and reads events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		scanner: newEventScanner(f),
		filter:  filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
// A malformed record yields an error wrapping ErrInvalidEvent.
func (r *Reader) Next() (Event, error) {
	for {
		event, err := r.scanner.next()
		if err != nil {
			return Event{}, err
		}
		if r.filter.Match(event) {
			return event, nil
		}
	}
}

// Close closes the file.
func (r *Reader) Close() error {
	return r.file.Close()
}
