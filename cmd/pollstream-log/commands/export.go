package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mash-protocol/pollstream/pkg/log"
)

// RunExport writes the capture file in the given format (jsonl or csv) to
// output, or to stdout if output is empty.
func RunExport(path, format, output string) error {
	var export func(*log.Reader, io.Writer) error
	switch format {
	case "jsonl":
		export = exportJSONL
	case "csv":
		export = exportCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

// exportDirection leaves the column empty for events that move no bytes.
func exportDirection(d log.Direction) string {
	if d == log.DirectionNone {
		return ""
	}
	return d.String()
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "connection_id", "remote_addr", "direction", "category", "type", "bytes", "queued", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var bytes, queued, detail string
		switch {
		case event.Data != nil:
			bytes = strconv.Itoa(event.Data.Size)
		case event.Flow != nil:
			bytes = strconv.Itoa(event.Flow.Bytes)
			queued = strconv.Itoa(event.Flow.Queued)
			detail = event.Flow.Status
		case event.StateChange != nil:
			detail = event.StateChange.NewState
		case event.Error != nil:
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format(timestampFormat),
			event.ConnectionID,
			event.RemoteAddr,
			exportDirection(event.Direction),
			event.Category.String(),
			typeLabel(event),
			bytes,
			queued,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
