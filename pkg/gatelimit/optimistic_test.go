package gatelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// Two back-to-back calls with no measurable elapsed time between them:
// the second short-circuits, reports the same outcome as the first, and
// consumes nothing.
func TestOptimisticShortCircuitReusesOutcome(t *testing.T) {
	mock := clock.NewMock()
	l, err := New(
		WithRate(1000),
		WithCapacity(10),
		WithMode(ModeOptimistic),
		WithClock(mock),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	mock.Add(5 * time.Millisecond) // five tokens available

	if !l.Acquire() {
		t.Fatal("first Acquire() = false, want true")
	}
	tokensAfterFirst := l.state.Load().tokens
	if tokensAfterFirst != 4 {
		t.Fatalf("tokens after first call = %d, want 4", tokensAfterFirst)
	}

	// Same instant: previous outcome is reused, no token moves.
	if !l.Acquire() {
		t.Error("second Acquire() = false, want the first call's outcome")
	}
	if tokens := l.state.Load().tokens; tokens != tokensAfterFirst {
		t.Errorf("tokens after short-circuit = %d, want %d", tokens, tokensAfterFirst)
	}
}

func TestOptimisticShortCircuitOnRefusal(t *testing.T) {
	mock := clock.NewMock()
	l, err := New(
		WithRate(1000),
		WithMode(ModeOptimistic),
		WithClock(mock),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// The initial snapshot records a permitted outcome, so a call before
	// the clock moves at all reuses that without consuming anything.
	if !l.Acquire() {
		t.Error("Acquire() at construction instant = false, want the initial recorded outcome")
	}
	if tokens := l.state.Load().tokens; tokens != 0 {
		t.Errorf("tokens after short-circuit = %d, want 0", tokens)
	}

	// Once time moves, a real refusal is published and later
	// zero-elapsed calls reuse it.
	mock.Add(time.Microsecond)
	if l.Acquire() {
		t.Error("Acquire() after 1µs = true on an empty bucket")
	}
	if l.Acquire() {
		t.Error("zero-elapsed Acquire() = true, want the recorded refusal")
	}
}

// With a distinct microsecond per call and refill out of reach, exactly k
// of n calls are admitted.
func TestOptimisticExactGrants(t *testing.T) {
	const k = 5
	const calls = 10

	mock := clock.NewMock()
	l, err := New(
		WithRate(1), // period 1s: the per-call ticks below refill nothing
		WithCapacity(k),
		WithMode(ModeOptimistic),
		WithClock(mock),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	mock.Add(k * time.Second) // fill the bucket

	admitted := 0
	for i := 0; i < calls; i++ {
		mock.Add(time.Microsecond)
		if l.Acquire() {
			admitted++
		}
		if tokens := l.state.Load().tokens; tokens < 0 || tokens > k {
			t.Fatalf("call %d: tokens = %d, outside [0, %d]", i+1, tokens, k)
		}
	}

	if admitted != k {
		t.Errorf("admitted = %d, want exactly %d", admitted, k)
	}
	if tokens := l.state.Load().tokens; tokens != 0 {
		t.Errorf("final tokens = %d, want 0", tokens)
	}
}

// Polling exactly at the period admits exactly rate*T tokens, same as
// FailFast: each call finds one fresh token.
func TestOptimisticThroughputAtPeriodCadence(t *testing.T) {
	mock := clock.NewMock()
	l, err := New(
		WithRate(1000),
		WithCapacity(1000),
		WithMode(ModeOptimistic),
		WithClock(mock),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	admitted := 0
	for i := 0; i < 500; i++ {
		mock.Add(time.Millisecond)
		if l.Acquire() {
			admitted++
		}
	}

	if admitted != 500 {
		t.Errorf("admitted = %d, want 500", admitted)
	}
}

// Hammer the CAS loop from many goroutines and check the invariants that
// must survive any interleaving: tokens never leave [0, capacity] and
// every consumed token was reported as an admission.
func TestOptimisticConcurrentInvariants(t *testing.T) {
	const k = 100
	const callers = 200
	const perCaller = 5

	l, err := New(
		WithRate(1), // period 1s: no refill during the test
		WithCapacity(k),
		WithMode(ModeOptimistic),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	l.state.Store(&bucketState{tokens: k, lastAccounted: 0, permitted: true})

	var wg sync.WaitGroup
	counts := make(chan int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := 0
			for j := 0; j < perCaller; j++ {
				if l.Acquire() {
					n++
				}
			}
			counts <- n
		}()
	}
	wg.Wait()
	close(counts)

	totalAdmitted := 0
	for n := range counts {
		totalAdmitted += n
	}

	final := l.state.Load().tokens
	if final < 0 || final > k {
		t.Errorf("final tokens = %d, outside [0, %d]", final, k)
	}

	consumed := k - final
	if totalAdmitted < int(consumed) {
		t.Errorf("admitted %d calls but %d tokens were consumed", totalAdmitted, consumed)
	}
}
