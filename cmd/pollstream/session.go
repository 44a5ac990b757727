package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mash-protocol/pollstream/pkg/client"
	"github.com/mash-protocol/pollstream/pkg/connection"
)

// session ties typed input, the client and the redialer together. It is
// driven from a single goroutine.
type session struct {
	client   *client.Client
	redialer *connection.Redialer
	out      io.Writer
	log      *slog.Logger
	buf      []byte
}

func newSession(c *client.Client, r *connection.Redialer, out io.Writer, logger *slog.Logger) *session {
	return &session{
		client:   c,
		redialer: r,
		out:      out,
		log:      logger,
		buf:      make([]byte, 4096),
	}
}

// handleLine processes one line of input. Lines starting with '/' are
// commands; everything else is sent with a trailing newline. It reports
// whether the user asked to quit.
func (s *session) handleLine(line string) (bool, error) {
	if !strings.HasPrefix(line, "/") {
		_, err := s.client.Write([]byte(line + "\n"))
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "/quit", "/exit", "/q":
		return true, nil
	case "/status":
		s.printStatus()
	case "/help", "/?":
		s.printHelp()
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type /help for commands)\n", line)
	}
	return false, nil
}

// step runs one tick of the loop at time now. It reports whether the session
// is over: the connection closed or failed and no redialer will bring it back.
func (s *session) step(now time.Time) (bool, error) {
	s.client.Sync()

	if s.redialer != nil {
		if err := s.redialer.Tick(now); err != nil {
			return true, err
		}
	}

	s.drain()

	if s.redialer != nil {
		return false, nil
	}
	switch s.client.State() {
	case client.StateClosed:
		if err := s.client.Err(); err != nil {
			return true, err
		}
		fmt.Fprintln(s.out, "Connection closed by peer")
		return true, nil
	case client.StateIdle:
		if err := s.client.Err(); err != nil {
			return true, err
		}
	}
	return false, nil
}

// drain copies everything the peer sent to out.
func (s *session) drain() {
	for s.client.Available() > 0 {
		n, err := s.client.Read(s.buf)
		if n > 0 {
			if _, werr := s.out.Write(s.buf[:n]); werr != nil {
				s.log.Warn("drain: write failed", "error", werr)
				return
			}
		}
		if err != nil || n == 0 {
			return
		}
	}
}

func (s *session) printStatus() {
	fmt.Fprintf(s.out, "State:     %s\n", s.client.State())
	if addr := s.client.RemoteAddr(); addr.IsValid() {
		fmt.Fprintf(s.out, "Remote:    %s\n", addr)
	}
	fmt.Fprintf(s.out, "Queued:    %d bytes\n", s.client.Queued())
	fmt.Fprintf(s.out, "Available: %d bytes\n", s.client.Available())
	if s.redialer != nil {
		fmt.Fprintf(s.out, "Attempts:  %d\n", s.redialer.Attempts())
	}
	if err := s.client.Err(); err != nil {
		fmt.Fprintf(s.out, "Error:     %v\n", err)
	}
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, `
Type a line to send it to the server. Received bytes are printed as they arrive.

Commands:
  /status  - Show connection status
  /help    - Show this help
  /quit    - Close the connection and exit`)
}
