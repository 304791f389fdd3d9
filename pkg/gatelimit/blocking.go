package gatelimit

// blockingStrategy admits every caller eventually, trading latency for a
// guarantee. All callers on the same limiter serialize on the limiter
// mutex, which stays held across the inter-attempt sleep: a limiter only
// ever runs one mode, so there is no one else to yield it to.
type blockingStrategy struct {
	l *Limiter
}

// acquire loops until the bucket can cover an admission, sleeping one
// refill period between attempts. The clock is re-read at the top of
// every attempt so that slept-out time is credited on the retry.
//
// The accounted timestamp is snapped to now on every successful publish,
// discarding sub-period progress each time. Admission requires the
// refreshed count to exceed one token, not merely reach it.
func (s *blockingStrategy) acquire() bool {
	l := s.l
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		now := l.nowMicros()
		cur := l.state.Load()

		tokens := refill(cur, now, l.period, l.capacity)
		if tokens > 1 {
			tokens--
			l.state.Store(&bucketState{
				tokens:        tokens,
				lastAccounted: now,
				permitted:     tokens >= 1,
			})
			return true
		}

		if l.recorder != nil {
			l.recorder.RecordWait()
		}
		l.sleepPeriod()
	}
}
