package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/pollstream/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Connections       map[string]*ConnectionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	RemoteAddr string

	// Bytes written by the application and bytes received from the peer.
	BytesOut int
	BytesIn  int

	// Bytes handed to the transport and acknowledged by the peer.
	BytesFlushed int
	BytesAcked   int

	Stalls     int
	Errors     int
	FinalState string
}

// CollectStats reads every event of the capture file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Connections:       make(map[string]*ConnectionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if event.RemoteAddr != "" {
		conn.RemoteAddr = event.RemoteAddr
	}

	switch {
	case event.Data != nil:
		if event.Direction == log.DirectionOut {
			conn.BytesOut += event.Data.Size
		} else {
			conn.BytesIn += event.Data.Size
		}
	case event.Flow != nil:
		switch event.Flow.Kind {
		case log.FlowFlush:
			conn.BytesFlushed += event.Flow.Bytes
		case log.FlowAck:
			conn.BytesAcked += event.Flow.Bytes
		case log.FlowStall:
			conn.Stalls++
		}
	case event.StateChange != nil:
		conn.FinalState = event.StateChange.NewState
	case event.Error != nil:
		conn.Errors++
		s.Errors++
	}
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== pollstream Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryData, log.CategoryFlow, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		sort.Slice(conns, func(i, j int) bool {
			return conns[i].stats.FirstSeen.Before(conns[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			cs := c.stats
			duration := cs.LastSeen.Sub(cs.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), cs.Events, duration)
			if cs.RemoteAddr != "" {
				fmt.Fprintf(w, "           Remote: %s\n", cs.RemoteAddr)
			}
			fmt.Fprintf(w, "           Written: %d  Flushed: %d  Acked: %d  Received: %d\n",
				cs.BytesOut, cs.BytesFlushed, cs.BytesAcked, cs.BytesIn)
			if cs.Stalls > 0 {
				fmt.Fprintf(w, "           Stalls: %d\n", cs.Stalls)
			}
			if cs.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", cs.Errors)
			}
			if cs.FinalState != "" {
				fmt.Fprintf(w, "           Final state: %s\n", cs.FinalState)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
