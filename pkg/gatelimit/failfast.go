package gatelimit

// failFastStrategy makes exactly one attempt under the limiter mutex and
// returns immediately. It never sleeps and never retries.
type failFastStrategy struct {
	l *Limiter
}

// acquire refreshes the bucket, consumes a token when one is available,
// and publishes the new snapshot either way. The accounted timestamp is
// snapped to now unconditionally, same as Blocking mode: a refusal still
// discards any sub-period refill progress.
func (s *failFastStrategy) acquire() bool {
	l := s.l
	now := l.nowMicros()

	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.state.Load()
	tokens := refill(cur, now, l.period, l.capacity)

	permitted := tokens > 0
	if permitted {
		tokens--
	}

	l.state.Store(&bucketState{
		tokens:        tokens,
		lastAccounted: now,
		permitted:     permitted,
	})
	return permitted
}
