package gatelimit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the construction-time limiter configuration. A limiter is
// immutable after construction; there is no reload path.
type Config struct {
	// Rate is the number of tokens generated per second. Required.
	Rate int `yaml:"rate"`

	// Capacity is the maximum number of tokens the bucket may hold.
	// Zero or omitted means "default to the rate".
	Capacity int64 `yaml:"capacity,omitempty"`

	// Mode is one of "blocking", "failfast", "optimistic".
	// Empty defaults to "blocking".
	Mode string `yaml:"mode,omitempty"`
}

// LoadConfigFromFile loads and validates a limiter configuration from a
// YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the configuration can build a limiter.
func (c *Config) Validate() error {
	if c.Rate <= 0 {
		return ErrInvalidRate
	}
	if c.Capacity < 0 {
		return ErrInvalidCapacity
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

// apply copies the configuration onto a limiter under construction.
func (c *Config) apply(l *Limiter) error {
	if err := c.Validate(); err != nil {
		return err
	}

	mode, err := ParseMode(c.Mode)
	if err != nil {
		return err
	}

	l.rate = c.Rate
	l.mode = mode
	if c.Capacity > 0 {
		l.capacity = c.Capacity
	}
	return nil
}

// ParseMode converts the config-file spelling of a mode to its Mode
// value. The empty string parses as ModeBlocking.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "blocking":
		return ModeBlocking, nil
	case "failfast":
		return ModeFailFast, nil
	case "optimistic":
		return ModeOptimistic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
