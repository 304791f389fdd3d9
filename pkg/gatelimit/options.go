package gatelimit

import (
	"fmt"

	"github.com/benbjohnson/clock"
)

// Option is a functional option for configuring a Limiter.
type Option func(*Limiter) error

// WithRate sets the token generation rate in tokens per second.
// This option is required.
func WithRate(perSecond int) Option {
	return func(l *Limiter) error {
		if perSecond <= 0 {
			return ErrInvalidRate
		}
		l.rate = perSecond
		return nil
	}
}

// WithCapacity sets the maximum number of tokens the bucket may hold.
// If not provided, capacity defaults to the rate (one second of burst).
func WithCapacity(n int64) Option {
	return func(l *Limiter) error {
		if n < 0 {
			return ErrInvalidCapacity
		}
		l.capacity = n
		return nil
	}
}

// WithMode sets the acquisition strategy. Defaults to ModeBlocking.
func WithMode(m Mode) Option {
	return func(l *Limiter) error {
		if !m.valid() {
			return ErrInvalidMode
		}
		l.mode = m
		return nil
	}
}

// WithClock sets the clock used for refill accounting and Blocking-mode
// sleeps. Tests inject a mock clock here; production code should not need
// this option.
func WithClock(clk clock.Clock) Option {
	return func(l *Limiter) error {
		if clk == nil {
			return fmt.Errorf("%w: clock cannot be nil", ErrInvalidConfig)
		}
		l.clk = clk
		return nil
	}
}

// WithMetrics attaches a recorder that observes every admission outcome.
func WithMetrics(r Recorder) Option {
	return func(l *Limiter) error {
		if r == nil {
			return fmt.Errorf("%w: recorder cannot be nil", ErrInvalidConfig)
		}
		l.recorder = r
		return nil
	}
}

// WithConfig applies a parsed configuration.
func WithConfig(c *Config) Option {
	return func(l *Limiter) error {
		if c == nil {
			return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
		}
		return c.apply(l)
	}
}

// WithConfigFile loads configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(l *Limiter) error {
		c, err := LoadConfigFromFile(path)
		if err != nil {
			return err
		}
		return c.apply(l)
	}
}
