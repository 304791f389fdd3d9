package gatelimit

import "errors"

var (
	// ErrInvalidRate is returned when the token generation rate is not
	// a positive number of tokens per second, or is too high for the
	// microsecond clock to resolve a refill period.
	ErrInvalidRate = errors.New("rate must be a positive number of tokens per second")

	// ErrInvalidCapacity is returned when the bucket capacity is negative.
	ErrInvalidCapacity = errors.New("bucket capacity must not be negative")

	// ErrInvalidMode is returned when an unknown acquisition mode is
	// requested.
	ErrInvalidMode = errors.New("unknown acquisition mode")

	// ErrInvalidConfig is returned when configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)
