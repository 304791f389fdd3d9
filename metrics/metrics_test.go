package metrics

import (
	"sync"
	"testing"
)

func TestMetricsRecord(t *testing.T) {
	m := New()

	m.Record(true)
	m.Record(true)
	m.Record(false)
	m.RecordWait()

	s := m.GetSnapshot()
	if s.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, want 3", s.TotalRequests)
	}
	if s.Admitted != 2 {
		t.Errorf("Admitted = %d, want 2", s.Admitted)
	}
	if s.Denied != 1 {
		t.Errorf("Denied = %d, want 1", s.Denied)
	}
	if s.WaitCycles != 1 {
		t.Errorf("WaitCycles = %d, want 1", s.WaitCycles)
	}
	if s.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}
}

func TestMetricsConcurrent(t *testing.T) {
	const goroutines = 50
	const perGoroutine = 200

	m := New()

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.Record(j%2 == 0)
			}
		}(i)
	}
	wg.Wait()

	s := m.GetSnapshot()
	if want := int64(goroutines * perGoroutine); s.TotalRequests != want {
		t.Errorf("TotalRequests = %d, want %d", s.TotalRequests, want)
	}
	if s.Admitted+s.Denied != s.TotalRequests {
		t.Errorf("Admitted(%d) + Denied(%d) != Total(%d)", s.Admitted, s.Denied, s.TotalRequests)
	}
}
