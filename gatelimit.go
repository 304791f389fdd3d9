package gatelimit

import (
	core "github.com/yourusername/gatelimit/pkg/gatelimit"
)

// Re-export main types for convenience
type (
	Limiter  = core.Limiter
	Acquirer = core.Acquirer
	Recorder = core.Recorder
	Mode     = core.Mode
	Option   = core.Option
	Config   = core.Config
)

const (
	ModeBlocking   = core.ModeBlocking
	ModeFailFast   = core.ModeFailFast
	ModeOptimistic = core.ModeOptimistic
)

// New creates a new limiter
var New = core.New

var (
	WithRate       = core.WithRate
	WithCapacity   = core.WithCapacity
	WithMode       = core.WithMode
	WithClock      = core.WithClock
	WithMetrics    = core.WithMetrics
	WithConfig     = core.WithConfig
	WithConfigFile = core.WithConfigFile

	LoadConfigFromFile = core.LoadConfigFromFile
	ParseMode          = core.ParseMode
)
