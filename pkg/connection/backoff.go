package connection

import (
	"math/rand/v2"
	"time"
)

// Backoff defaults.
const (
	// InitialBackoff is the delay before the first retry.
	InitialBackoff = 1 * time.Second

	// MaxBackoff caps the retry delay.
	MaxBackoff = 60 * time.Second

	// BackoffMultiplier is the growth factor between retries.
	BackoffMultiplier = 2.0

	// JitterFactor is the maximum jitter as a fraction of the base delay.
	JitterFactor = 0.25
)

// BackoffConfig customizes backoff parameters. Zero durations and a
// multiplier of at most 1 select the defaults; a zero Jitter disables jitter.
type BackoffConfig struct {
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	Multiplier float64       `yaml:"multiplier"`
	Jitter     float64       `yaml:"jitter"`
}

// DefaultBackoffConfig returns the default backoff parameters.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    InitialBackoff,
		Max:        MaxBackoff,
		Multiplier: BackoffMultiplier,
		Jitter:     JitterFactor,
	}
}

// Backoff computes exponential retry delays with jitter. It is not safe for
// concurrent use.
type Backoff struct {
	cfg     BackoffConfig
	current time.Duration
	steps   int
}

// NewBackoff creates a Backoff.
func NewBackoff(cfg BackoffConfig) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = InitialBackoff
	}
	if cfg.Max <= 0 {
		cfg.Max = MaxBackoff
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = BackoffMultiplier
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}
	return &Backoff{cfg: cfg, current: cfg.Initial}
}

// Next returns the next delay, jitter included, and advances the backoff.
func (b *Backoff) Next() time.Duration {
	delay := b.jittered(b.current)

	b.steps++
	next := time.Duration(float64(b.current) * b.cfg.Multiplier)
	if next > b.cfg.Max {
		next = b.cfg.Max
	}
	b.current = next
	return delay
}

// Current returns the base delay the next call to Next starts from.
func (b *Backoff) Current() time.Duration {
	return b.current
}

// Steps returns the number of delays handed out since the last Reset.
func (b *Backoff) Steps() int {
	return b.steps
}

// Reset returns to the initial delay.
func (b *Backoff) Reset() {
	b.current = b.cfg.Initial
	b.steps = 0
}

func (b *Backoff) jittered(d time.Duration) time.Duration {
	if b.cfg.Jitter == 0 {
		return d
	}
	return d + time.Duration(float64(d)*b.cfg.Jitter*rand.Float64())
}
