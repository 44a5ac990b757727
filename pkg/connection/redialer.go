package connection

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mash-protocol/pollstream/pkg/client"
)

// ErrGaveUp is returned by Tick once MaxAttempts consecutive connects failed.
var ErrGaveUp = errors.New("connection: giving up after repeated failures")

// Client is the part of client.Client driven by a Redialer.
type Client interface {
	Connect(host string, port int) error
	State() client.State
	Stop()
}

// RedialerConfig configures a Redialer.
type RedialerConfig struct {
	// Host and Port are passed to Client.Connect.
	Host string
	Port int

	// Backoff paces the attempts that follow a failure.
	Backoff BackoffConfig

	// HandshakeTimeout stops a connect that has not completed in time so that
	// it can be retried. Zero waits forever.
	HandshakeTimeout time.Duration

	// MaxAttempts is the number of consecutive failed attempts after which
	// Tick returns ErrGaveUp. Zero retries forever.
	MaxAttempts int

	// Logger receives operational logs (default: slog.Default()).
	Logger *slog.Logger
}

// Redialer reissues Client.Connect from the polling loop.
type Redialer struct {
	client  Client
	config  RedialerConfig
	backoff *Backoff
	log     *slog.Logger

	attempts int
	started  time.Time
	due      time.Time
	dialed   bool
}

// NewRedialer creates a Redialer for c.
func NewRedialer(c Client, config RedialerConfig) *Redialer {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Redialer{
		client:  c,
		config:  config,
		backoff: NewBackoff(config.Backoff),
		log:     config.Logger,
	}
}

// Attempts returns the number of connects issued since the client was last
// connected.
func (r *Redialer) Attempts() int {
	return r.attempts
}

// Due returns when the next connect is issued, or the zero time if none is
// scheduled.
func (r *Redialer) Due() time.Time {
	return r.due
}

// Tick issues a connect if the client is not connected and the backoff delay
// has passed. It returns configuration errors from Connect, which retrying
// cannot fix, and ErrGaveUp once MaxAttempts is exhausted.
func (r *Redialer) Tick(now time.Time) error {
	switch r.client.State() {
	case client.StateConnected:
		if r.attempts > 0 {
			r.log.Debug("Tick: connected", "attempts", r.attempts)
		}
		r.attempts = 0
		r.backoff.Reset()
		r.due = time.Time{}
		return nil

	case client.StateConnecting:
		if r.config.HandshakeTimeout > 0 && now.Sub(r.started) >= r.config.HandshakeTimeout {
			r.log.Debug("Tick: handshake timed out", "after", now.Sub(r.started))
			r.client.Stop()
		}
		return nil
	}

	if r.config.MaxAttempts > 0 && r.attempts >= r.config.MaxAttempts {
		return ErrGaveUp
	}

	if r.due.IsZero() {
		if !r.dialed {
			r.due = now
		} else {
			r.due = now.Add(r.backoff.Next())
			r.log.Debug("Tick: retry scheduled", "at", r.due, "attempts", r.attempts)
		}
	}
	if now.Before(r.due) {
		return nil
	}

	r.due = time.Time{}
	r.dialed = true
	r.attempts++
	r.started = now

	err := r.client.Connect(r.config.Host, r.config.Port)
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrConfiguration) {
		return err
	}
	r.log.Warn("Tick: connect failed", "host", r.config.Host, "port", r.config.Port, "error", err)
	return nil
}
