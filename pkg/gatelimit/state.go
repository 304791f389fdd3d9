package gatelimit

// bucketState is an immutable snapshot of the bucket. Every update builds
// a fresh snapshot and publishes it wholesale; fields are never mutated in
// place, so readers need no synchronization beyond loading the pointer.
type bucketState struct {
	// tokens currently available; always within [0, capacity].
	tokens int64

	// lastAccounted is the instant, in microseconds since limiter
	// construction, up to which refill has been credited.
	lastAccounted int64

	// permitted is the admission outcome recorded when this snapshot
	// was published.
	permitted bool
}

// refill computes the token count after crediting the whole periods that
// elapsed between s.lastAccounted and now, capped at capacity. Sub-period
// progress is truncated; whether that remainder is preserved depends on
// what the caller stores as the next snapshot's lastAccounted.
// If now has not advanced past lastAccounted, the count is unchanged.
func refill(s *bucketState, now, period, capacity int64) int64 {
	if now <= s.lastAccounted {
		return s.tokens
	}
	tokens := s.tokens + (now-s.lastAccounted)/period
	if tokens > capacity {
		tokens = capacity
	}
	return tokens
}
