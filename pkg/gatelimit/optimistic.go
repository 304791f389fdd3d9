package gatelimit

import "runtime"

// optimisticStrategy shares no lock. Writers race to publish the next
// snapshot via compare-and-swap; at most one wins per transition and the
// rest retry from a fresh read. This gives lock-freedom (someone always
// makes progress) but not starvation-freedom under hostile contention.
type optimisticStrategy struct {
	l *Limiter
}

// acquire returns immediately with a real outcome. It never sleeps for
// token scarcity; it only spins to resolve write races.
//
// When the clock has not advanced past the last accounted instant, the
// call short-circuits and reports the previously recorded outcome without
// consuming a token or publishing anything. That is a resolution guard
// for calls arriving within the same microsecond, not a token grant.
// Unlike the locked strategies, the accounted timestamp only moves when
// time actually elapsed.
func (s *optimisticStrategy) acquire() bool {
	l := s.l
	for {
		cur := l.state.Load()
		now := l.nowMicros()

		if now <= cur.lastAccounted {
			return cur.permitted
		}

		tokens := refill(cur, now, l.period, l.capacity)
		permitted := tokens >= 1
		if permitted {
			tokens--
		}

		next := &bucketState{
			tokens:        tokens,
			lastAccounted: now,
			permitted:     permitted,
		}
		if l.state.CompareAndSwap(cur, next) {
			return permitted
		}

		// Lost the publish race; let the winner's successor run before
		// rereading.
		runtime.Gosched()
	}
}
