package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/pollstream/pkg/connection"
	"github.com/mash-protocol/pollstream/pkg/transport"
)

// Defaults applied when neither a flag nor the config file sets a value.
const (
	DefaultTick             = 10 * time.Millisecond
	DefaultLogLevel         = "info"
	DefaultHandshakeTimeout = 10 * time.Second
)

// Config holds the client configuration. It is read from an optional YAML
// file; flags given on the command line take precedence.
type Config struct {
	ConfigFile string `yaml:"-"`

	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Browse is an mDNS service type; when set, the endpoint is resolved
	// instead of taken from Host.
	Browse    string `yaml:"browse"`
	Instance  string `yaml:"instance"`
	Interface string `yaml:"interface"`

	Tick        time.Duration `yaml:"tick"`
	LogLevel    string        `yaml:"log_level"`
	ProtocolLog string        `yaml:"protocol_log"`

	Reconnect        bool                     `yaml:"reconnect"`
	HandshakeTimeout time.Duration            `yaml:"handshake_timeout"`
	MaxAttempts      int                      `yaml:"max_attempts"`
	Backoff          connection.BackoffConfig `yaml:"backoff"`

	MaxQueued  int `yaml:"max_queued"`
	SendBuffer int `yaml:"send_buffer"`
	RecvWindow int `yaml:"recv_window"`
}

// parseConfig parses args, merges them over the config file named by
// -config, and applies defaults.
func parseConfig(args []string, errOut io.Writer) (Config, error) {
	var flags Config

	fs := flag.NewFlagSet("pollstream", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&flags.Host, "host", "", "Server IP address")
	fs.IntVar(&flags.Port, "port", 0, "Server port")
	fs.StringVar(&flags.Browse, "browse", "", "Resolve the server via mDNS service type (e.g. _pollstream._tcp)")
	fs.StringVar(&flags.Instance, "instance", "", "mDNS instance name to select (default: first found)")
	fs.StringVar(&flags.Interface, "interface", "", "Network interface for mDNS")
	fs.DurationVar(&flags.Tick, "tick", DefaultTick, "Sync interval")
	fs.StringVar(&flags.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flags.ProtocolLog, "protocol-log", "", "Write protocol events to this capture file")
	fs.BoolVar(&flags.Reconnect, "reconnect", false, "Reconnect with backoff after a failed or closed connection")
	fs.IntVar(&flags.MaxQueued, "max-queued", 0, "Outbound queue limit in bytes (0: default, <0: unlimited)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	config := flags
	if flags.ConfigFile != "" {
		file, err := loadConfigFile(flags.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		config = file
		config.ConfigFile = flags.ConfigFile
		fs.Visit(func(f *flag.Flag) {
			overrideFromFlag(&config, &flags, f.Name)
		})
	}

	applyDefaults(&config)
	if err := validateConfig(config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// loadConfigFile reads a YAML config file.
func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// overrideFromFlag copies the value of the named flag from flags to config.
func overrideFromFlag(config, flags *Config, name string) {
	switch name {
	case "host":
		config.Host = flags.Host
	case "port":
		config.Port = flags.Port
	case "browse":
		config.Browse = flags.Browse
	case "instance":
		config.Instance = flags.Instance
	case "interface":
		config.Interface = flags.Interface
	case "tick":
		config.Tick = flags.Tick
	case "log-level":
		config.LogLevel = flags.LogLevel
	case "protocol-log":
		config.ProtocolLog = flags.ProtocolLog
	case "reconnect":
		config.Reconnect = flags.Reconnect
	case "max-queued":
		config.MaxQueued = flags.MaxQueued
	}
}

func applyDefaults(config *Config) {
	if config.Tick <= 0 {
		config.Tick = DefaultTick
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.Reconnect && config.HandshakeTimeout == 0 {
		config.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if config.Backoff == (connection.BackoffConfig{}) {
		config.Backoff = connection.DefaultBackoffConfig()
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = transport.DefaultSendBuffer
	}
	if config.RecvWindow <= 0 {
		config.RecvWindow = transport.DefaultRecvWindow
	}
}

func validateConfig(config Config) error {
	if config.Host == "" && config.Browse == "" {
		return errors.New("either -host or -browse is required")
	}
	if config.Host != "" && config.Browse != "" {
		return errors.New("-host and -browse are mutually exclusive")
	}
	if config.Host != "" && (config.Port < 1 || config.Port > 65535) {
		return fmt.Errorf("port must be 1-65535, got %d", config.Port)
	}
	if _, err := parseLevel(config.LogLevel); err != nil {
		return err
	}
	if config.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", config.MaxAttempts)
	}
	return nil
}

// parseLevel maps a log level name to a slog level.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func (c Config) tcpConfig() transport.TCPConfig {
	tcp := transport.DefaultTCPConfig()
	tcp.SendBuffer = c.SendBuffer
	tcp.RecvWindow = c.RecvWindow
	return tcp
}
