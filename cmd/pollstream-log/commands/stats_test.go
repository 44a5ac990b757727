package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/pollstream/pkg/log"
)

func TestCollectStats(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats() error = %v", err)
	}

	if stats.TotalEvents != 8 {
		t.Errorf("TotalEvents = %d, want 8", stats.TotalEvents)
	}
	if stats.EventsByCategory[log.CategoryFlow] != 3 {
		t.Errorf("flow events = %d, want 3", stats.EventsByCategory[log.CategoryFlow])
	}
	if len(stats.Connections) != 2 {
		t.Fatalf("connections = %d, want 2", len(stats.Connections))
	}

	a := stats.Connections[connA]
	if a.BytesOut != 100 || a.BytesIn != 4 || a.BytesFlushed != 40 || a.BytesAcked != 40 || a.Stalls != 1 {
		t.Errorf("unexpected connection stats: %+v", a)
	}
	if a.FinalState != "CONNECTED" || a.RemoteAddr != "10.0.0.5:4242" {
		t.Errorf("FinalState = %q, RemoteAddr = %q", a.FinalState, a.RemoteAddr)
	}
	if stats.Errors != 1 || stats.Connections[connB].Errors != 1 {
		t.Errorf("Errors = %d", stats.Errors)
	}
	if !stats.TimeRange.Start.Equal(t0) || !stats.TimeRange.End.Equal(t0.Add(time.Second)) {
		t.Errorf("TimeRange = %v - %v", stats.TimeRange.Start, stats.TimeRange.End)
	}
}

func TestRunStats(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 8",
		"Connections: 2",
		"[abc12345] 7 events",
		"Written: 100  Flushed: 40  Acked: 40  Received: 4",
		"Stalls: 1",
		"Final state: CONNECTED",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}
