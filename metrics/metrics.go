// Package metrics tracks admission statistics for limiters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics collects admission outcomes. It satisfies the gatelimit.Recorder
// interface, so it can be attached to a limiter via WithMetrics. All
// methods are safe for concurrent use; the hot path is a couple of atomic
// increments.
type Metrics struct {
	total    atomic.Int64
	admitted atomic.Int64
	denied   atomic.Int64
	waits    atomic.Int64

	startTime time.Time
}

// New creates a metrics collector.
func New() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// Record registers one admission outcome.
func (m *Metrics) Record(admitted bool) {
	m.total.Add(1)
	if admitted {
		m.admitted.Add(1)
	} else {
		m.denied.Add(1)
	}
}

// RecordWait registers one Blocking-mode sleep cycle.
func (m *Metrics) RecordWait() {
	m.waits.Add(1)
}

// Snapshot represents a point-in-time view of the collected counters.
type Snapshot struct {
	TotalRequests int64     `json:"total_requests"`
	Admitted      int64     `json:"admitted"`
	Denied        int64     `json:"denied"`
	WaitCycles    int64     `json:"wait_cycles"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
}

// GetSnapshot returns a copy of the counters. Counters are read
// individually, so a snapshot taken under load may be off by the requests
// that landed mid-read.
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		TotalRequests: m.total.Load(),
		Admitted:      m.admitted.Load(),
		Denied:        m.denied.Load(),
		WaitCycles:    m.waits.Load(),
		UptimeSeconds: int64(time.Since(m.startTime).Seconds()),
		StartTime:     m.startTime,
	}
}
