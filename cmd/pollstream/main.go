// Command pollstream is an interactive client for a plain TCP byte stream,
// driven by a single polling loop.
//
// Usage:
//
//	pollstream [flags]
//
// Flags:
//
//	-host string          Server IP address
//	-port int             Server port
//	-browse string        Resolve the server via mDNS service type
//	-instance string      mDNS instance name to select
//	-config string        Configuration file path (YAML)
//	-tick duration        Sync interval (default 10ms)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Write protocol events to this capture file
//	-reconnect            Reconnect with backoff after a failed or closed connection
//
// Examples:
//
//	# Connect to a server and type lines to send
//	pollstream -host 10.0.0.5 -port 4242
//
//	# Find the server via mDNS and keep reconnecting
//	pollstream -browse _pollstream._tcp -reconnect
//
//	# Capture protocol events for pollstream-log
//	pollstream -host 10.0.0.5 -port 4242 -protocol-log client.plog
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/pollstream/pkg/client"
	"github.com/mash-protocol/pollstream/pkg/connection"
	"github.com/mash-protocol/pollstream/pkg/discovery"
	"github.com/mash-protocol/pollstream/pkg/log"
	"github.com/mash-protocol/pollstream/pkg/transport"
)

func main() {
	config, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(config Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	logger := newLogger(config.LogLevel, rl.Stderr())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	host, port, err := resolveEndpoint(ctx, config, logger)
	if err != nil {
		return err
	}

	plog, closeLog, err := openProtocolLog(config, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := client.New(client.Config{
		Transport:      transport.TCPFactory(config.tcpConfig(), logger),
		Logger:         logger,
		ProtocolLogger: plog,
		MaxQueued:      config.MaxQueued,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}()

	var redialer *connection.Redialer
	if config.Reconnect {
		redialer = connection.NewRedialer(c, connection.RedialerConfig{
			Host:             host,
			Port:             port,
			Backoff:          config.Backoff,
			HandshakeTimeout: config.HandshakeTimeout,
			MaxAttempts:      config.MaxAttempts,
			Logger:           logger,
		})
	} else if err := c.Connect(host, port); err != nil {
		return err
	}
	logger.Info("connecting", "host", host, "port", port, "conn_id", c.ID())

	s := newSession(c, redialer, rl.Stdout(), logger)
	lines := readLines(ctx, rl)

	ticker := time.NewTicker(config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := s.handleLine(line)
			if err != nil {
				fmt.Fprintf(rl.Stderr(), "Write failed: %v\n", err)
			}
			if quit {
				return nil
			}

		case now := <-ticker.C:
			done, err := s.step(now)
			if done {
				return err
			}
		}
	}
}

// newLogger returns a text slog.Logger writing to w at the given level.
func newLogger(level string, w io.Writer) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// resolveEndpoint returns the configured host and port, or looks them up via
// mDNS when browsing.
func resolveEndpoint(ctx context.Context, config Config, logger *slog.Logger) (string, int, error) {
	if config.Browse == "" {
		return config.Host, config.Port, nil
	}

	resolver := discovery.NewResolver(discovery.ResolverConfig{
		Interface: config.Interface,
		Logger:    logger,
	})
	logger.Info("browsing", "service", config.Browse, "instance", config.Instance)

	ep, err := resolver.Resolve(ctx, config.Browse, config.Instance)
	if err != nil {
		return "", 0, fmt.Errorf("failed to resolve %s: %w", config.Browse, err)
	}
	host, port, err := ep.Target()
	if err != nil {
		return "", 0, fmt.Errorf("failed to resolve %s: %w", config.Browse, err)
	}
	logger.Info("resolved", "instance", ep.Instance, "host", host, "port", port)
	return host, port, nil
}

// openProtocolLog builds the protocol logger: a capture file when configured
// and the slog adapter at debug level. The returned func closes the file.
func openProtocolLog(config Config, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeLog := func() {}

	if config.ProtocolLog != "" {
		fl, err := log.NewFileLogger(config.ProtocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open protocol log: %w", err)
		}
		loggers = append(loggers, fl)
		closeLog = func() {
			if n := fl.Dropped(); n > 0 {
				logger.Warn("protocol log dropped events", "count", n)
			}
			if err := fl.Close(); err != nil {
				logger.Warn("protocol log close failed", "error", err)
			}
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closeLog, nil
	case 1:
		return loggers[0], closeLog, nil
	default:
		return log.NewMultiLogger(loggers...), closeLog, nil
	}
}

// readLines reads input lines on a goroutine. The channel is closed on EOF.
func readLines(ctx context.Context, rl *readline.Instance) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				continue
			}
			if err != nil {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
