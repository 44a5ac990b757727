package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/mash-protocol/pollstream/pkg/log"
)

// FilterOptions holds the filter flags shared by view and filter.
type FilterOptions struct {
	ConnID    string
	TimeStart string
	TimeEnd   string
	Direction string
	Category  string
}

// BuildFilter converts flag values into a log.Filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{ConnectionID: opts.ConnID}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Direction != "" {
		d, err := ParseDirectionFlag(opts.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}

	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	return filter, nil
}

// RunFilter copies the events of path that match filter into a new capture
// file and returns how many were copied.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}

	if err := logger.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	if n := logger.Dropped(); n > 0 {
		return count - n, fmt.Errorf("failed to write %d events", n)
	}
	return count, nil
}
