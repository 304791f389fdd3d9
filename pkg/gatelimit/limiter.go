package gatelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Acquirer is the single capability consumed by calling code: ask for one
// token, get a yes or no. The behavior behind the answer is fixed by the
// mode the limiter was built with.
type Acquirer interface {
	// Acquire attempts to consume one token. It never returns an error;
	// every outcome is expressed as the boolean result.
	Acquire() bool
}

// Recorder receives admission outcomes for observability. The metrics
// package provides an implementation; any collector satisfying this
// interface can be plugged in via WithMetrics.
type Recorder interface {
	// Record is called once per Acquire with the admission outcome.
	Record(admitted bool)

	// RecordWait is called each time a Blocking-mode caller sleeps out
	// a refill period before retrying.
	RecordWait()
}

// Mode selects the acquisition strategy. Exactly one strategy is active
// per limiter for its whole lifetime; there is no dynamic switching.
type Mode int

const (
	// ModeBlocking waits out refill periods until a token is available.
	// Acquire never returns false in this mode.
	ModeBlocking Mode = iota

	// ModeFailFast makes a single attempt and returns immediately.
	ModeFailFast

	// ModeOptimistic is lock-free: it never blocks on token scarcity and
	// resolves concurrent writers by compare-and-swap retry.
	ModeOptimistic
)

// String returns the config-file spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBlocking:
		return "blocking"
	case ModeFailFast:
		return "failfast"
	case ModeOptimistic:
		return "optimistic"
	default:
		return "unknown"
	}
}

// valid reports whether m names a known strategy.
func (m Mode) valid() bool {
	return m >= ModeBlocking && m <= ModeOptimistic
}

// strategy is the internal contract each mode implements. Keeping the
// three concurrency disciplines behind separate types keeps each one
// independently testable instead of branching inside a shared method.
type strategy interface {
	acquire() bool
}

// Limiter is a token bucket gating access to a finite-rate resource for
// concurrent callers. The bucket starts empty: at least one refill period
// must elapse before the first admission can succeed.
//
// A Limiter must not be copied after creation.
type Limiter struct {
	rate     int   // tokens generated per second
	capacity int64 // maximum tokens the bucket may hold
	period   int64 // microseconds to generate one token
	mode     Mode

	clk   clock.Clock
	start time.Time // construction instant; all timestamps are relative to it

	// state is the only shared mutable resource. Blocking and FailFast
	// update it under mu; Optimistic races via CompareAndSwap.
	state atomic.Pointer[bucketState]
	mu    sync.Mutex

	strategy strategy
	recorder Recorder
}

var _ Acquirer = (*Limiter)(nil)

// New builds a limiter from the given options. WithRate is required;
// capacity defaults to the rate and mode defaults to ModeBlocking.
func New(opts ...Option) (*Limiter, error) {
	l := &Limiter{
		capacity: -1, // sentinel: default to rate after options apply
		mode:     ModeBlocking,
		clk:      clock.New(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	if l.rate <= 0 {
		return nil, ErrInvalidRate
	}
	if l.capacity < 0 {
		l.capacity = int64(l.rate)
	}

	l.period = int64(time.Second/time.Microsecond) / int64(l.rate)
	if l.period == 0 {
		return nil, ErrInvalidRate
	}

	switch l.mode {
	case ModeBlocking:
		l.strategy = &blockingStrategy{l}
	case ModeFailFast:
		l.strategy = &failFastStrategy{l}
	case ModeOptimistic:
		l.strategy = &optimisticStrategy{l}
	default:
		return nil, ErrInvalidMode
	}

	l.start = l.clk.Now()
	l.state.Store(&bucketState{tokens: 0, lastAccounted: 0, permitted: true})

	return l, nil
}

// Acquire attempts to consume one token under the configured strategy.
// Blocking mode always returns true, sleeping as long as it takes;
// FailFast and Optimistic return immediately with the real outcome.
func (l *Limiter) Acquire() bool {
	admitted := l.strategy.acquire()
	if l.recorder != nil {
		l.recorder.Record(admitted)
	}
	return admitted
}

// Rate returns the configured tokens generated per second.
func (l *Limiter) Rate() int {
	return l.rate
}

// Capacity returns the maximum number of tokens the bucket may hold.
func (l *Limiter) Capacity() int64 {
	return l.capacity
}

// Mode returns the acquisition strategy the limiter was built with.
func (l *Limiter) Mode() Mode {
	return l.mode
}

// Period returns the time needed to generate one token.
func (l *Limiter) Period() time.Duration {
	return time.Duration(l.period) * time.Microsecond
}

// Remaining reports the tokens that would be available right now. It is a
// diagnostic read: nothing is consumed and no new state is published, so
// the value may be stale by the time the caller acts on it.
func (l *Limiter) Remaining() int64 {
	return refill(l.state.Load(), l.nowMicros(), l.period, l.capacity)
}

// nowMicros returns the monotonic elapsed time since construction, in
// microseconds. The wall component of the start time never participates,
// so clock adjustments cannot move the bucket backwards.
func (l *Limiter) nowMicros() int64 {
	return l.clk.Now().Sub(l.start).Microseconds()
}

// sleepPeriod blocks for exactly one refill period. There is no
// cancellation path: the wait always runs to completion.
func (l *Limiter) sleepPeriod() {
	l.clk.Sleep(time.Duration(l.period) * time.Microsecond)
}
