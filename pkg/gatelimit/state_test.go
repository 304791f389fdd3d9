package gatelimit

import "testing"

func TestRefill(t *testing.T) {
	tests := []struct {
		name     string
		state    bucketState
		now      int64
		period   int64
		capacity int64
		want     int64
	}{
		{
			name:     "no elapsed time",
			state:    bucketState{tokens: 3, lastAccounted: 1000},
			now:      1000,
			period:   1000,
			capacity: 10,
			want:     3,
		},
		{
			name:     "clock behind accounted time",
			state:    bucketState{tokens: 3, lastAccounted: 2000},
			now:      1500,
			period:   1000,
			capacity: 10,
			want:     3,
		},
		{
			name:     "sub-period progress truncates to nothing",
			state:    bucketState{tokens: 0, lastAccounted: 0},
			now:      999,
			period:   1000,
			capacity: 10,
			want:     0,
		},
		{
			name:     "exactly one period",
			state:    bucketState{tokens: 0, lastAccounted: 0},
			now:      1000,
			period:   1000,
			capacity: 10,
			want:     1,
		},
		{
			name:     "multiple whole periods, remainder dropped",
			state:    bucketState{tokens: 1, lastAccounted: 500},
			now:      4100, // 3.6 periods elapsed
			period:   1000,
			capacity: 10,
			want:     4,
		},
		{
			name:     "capped at capacity",
			state:    bucketState{tokens: 5, lastAccounted: 0},
			now:      100_000,
			period:   1000,
			capacity: 10,
			want:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := refill(&tt.state, tt.now, tt.period, tt.capacity)
			if got != tt.want {
				t.Errorf("refill() = %d, want %d", got, tt.want)
			}
		})
	}
}
