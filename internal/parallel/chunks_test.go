package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForEachChunkCoversRange(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"inline", 1, 10},
		{"more workers than items", 16, 3},
		{"even split", 4, 100},
		{"uneven split", 3, 10},
		{"default workers", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			ForEachChunk(tt.workers, tt.n, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})

			for i, h := range hits {
				if h != 1 {
					t.Errorf("index %d visited %d times, want exactly once", i, h)
				}
			}
		})
	}
}

func TestForEachChunkEmpty(t *testing.T) {
	called := false
	ForEachChunk(4, 0, func(start, end int) { called = true })
	if called {
		t.Error("fn called for n = 0")
	}
}
