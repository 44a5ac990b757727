// Package commands implements the pollstream-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/pollstream/pkg/log"
)

// timestampFormat is used for every timestamp printed by the tool.
const timestampFormat = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timestampFormat)
	connID := shortenConnID(event.ConnectionID)

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n", ts, connID, directionLabel(event.Direction), event.Category.String(), typeLabel(event))
	if event.RemoteAddr != "" && event.StateChange != nil {
		fmt.Fprintf(w, "  Remote: %s\n", event.RemoteAddr)
	}

	switch {
	case event.Data != nil:
		formatDataDetails(w, event.Data)
	case event.Flow != nil:
		formatFlowDetails(w, event.Flow)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// directionLabel returns "-" for events that move no bytes.
func directionLabel(d log.Direction) string {
	if d == log.DirectionNone {
		return "-"
	}
	return d.String()
}

// typeLabel names the payload carried by event.
func typeLabel(event log.Event) string {
	switch {
	case event.Data != nil:
		return "Data"
	case event.Flow != nil:
		return event.Flow.Kind.String()
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatDataDetails(w io.Writer, d *log.DataEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", d.Size)
	if len(d.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(d.Data))
		if d.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatFlowDetails(w io.Writer, f *log.FlowEvent) {
	fmt.Fprintf(w, "  Bytes: %d  Queued: %d", f.Bytes, f.Queued)
	if f.Window > 0 {
		fmt.Fprintf(w, "  Window: %d", f.Window)
	}
	fmt.Fprintln(w)
	if f.Status != "" {
		fmt.Fprintf(w, "  Status: %s\n", f.Status)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Kind: %s\n", e.Kind)
	if e.Status != "" {
		fmt.Fprintf(w, "  Status: %s\n", e.Status)
	}
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
	if e.Fatal {
		fmt.Fprintln(w, "  Fatal: connection closed")
	}
}

// ParseDirectionFlag parses a direction string (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "data":
		return log.CategoryData, nil
	case "flow":
		return log.CategoryFlow, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, data, flow, or error)", s)
	}
}

// RunView prints every event of the capture file that matches filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
