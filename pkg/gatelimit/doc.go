// Package gatelimit provides a shared token bucket for gating concurrent
// access to a finite-rate resource.
//
// One bucket, one capability: Acquire() reports whether the caller may
// proceed. How that answer is produced depends on the mode the limiter was
// built with, chosen once at construction:
//
//   - ModeBlocking: Acquire waits out refill periods until a token is
//     available. It never returns false.
//   - ModeFailFast: Acquire makes a single attempt and returns the real
//     outcome immediately. It never sleeps.
//   - ModeOptimistic: lock-free. Acquire never blocks on token scarcity;
//     concurrent writers race via compare-and-swap and the losers retry.
//
// # Quick Start
//
//	limiter, err := gatelimit.New(
//	    gatelimit.WithRate(1000),           // 1000 tokens/sec
//	    gatelimit.WithMode(gatelimit.ModeFailFast),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if limiter.Acquire() {
//	    // proceed
//	}
//
// # Accounting
//
// The bucket starts empty and refills one token per period, where period
// is 1,000,000 / rate microseconds. Refill credits whole periods only;
// how the fractional remainder is handled differs between modes and is
// deliberate: Blocking and FailFast snap the accounting point to the
// current instant on every attempt, while Optimistic advances it only
// when time actually moved and otherwise reuses the previous outcome.
// Under rapid polling the modes therefore admit at measurably different
// long-run rates.
//
// # Configuration
//
// Construction can also be driven by a YAML file:
//
//	rate: 1000
//	capacity: 500
//	mode: failfast
//
//	limiter, err := gatelimit.New(gatelimit.WithConfigFile("limits.yaml"))
//
// # Concurrency
//
// A single *Limiter is safe for use from any number of goroutines. The
// only shared mutable state is one atomically swapped immutable snapshot;
// Blocking and FailFast serialize on a per-limiter mutex, Optimistic uses
// compare-and-swap with a scheduler yield on contention.
package gatelimit
