package client

import (
	"log/slog"

	pslog "github.com/mash-protocol/pollstream/pkg/log"
	"github.com/mash-protocol/pollstream/pkg/transport"
)

// Buffer limits.
const (
	// DefaultMaxQueued caps outbound bytes awaiting acknowledgment.
	DefaultMaxQueued = 1 << 20

	// DefaultMaxReceiveBuffered caps inbound bytes awaiting Read.
	DefaultMaxReceiveBuffered = 1 << 20
)

// Config configures a Client.
type Config struct {
	// Transport creates the transport handle on the first Connect and again
	// after the connection was closed. Required.
	Transport transport.Factory

	// Logger receives operational logs (default: slog.Default()).
	Logger *slog.Logger

	// ProtocolLogger receives protocol events (default: NoopLogger).
	ProtocolLogger pslog.Logger

	// MaxQueued caps outbound bytes not yet acknowledged. Zero selects
	// DefaultMaxQueued, a negative value disables the cap.
	MaxQueued int

	// MaxReceiveBuffered caps inbound bytes not yet read. Zero selects
	// DefaultMaxReceiveBuffered, a negative value disables the cap.
	MaxReceiveBuffered int

	// LogSampleSize is the number of payload bytes kept in protocol data events
	// (default: log.DefaultSampleSize).
	LogSampleSize int

	// ConnectionID names the client in logs (default: a random UUID).
	ConnectionID string
}

// DefaultConfig returns a Config with default limits and no transport.
func DefaultConfig() Config {
	return Config{
		MaxQueued:          DefaultMaxQueued,
		MaxReceiveBuffered: DefaultMaxReceiveBuffered,
		LogSampleSize:      pslog.DefaultSampleSize,
	}
}
