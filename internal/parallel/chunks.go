package parallel

import (
	"runtime"
	"sync"
)

// ForEachChunk splits [0, n) into contiguous chunks and runs fn on each
// chunk from its own goroutine, blocking until all complete. Chunks
// never overlap, so fn may write to disjoint regions of a shared slice
// without synchronization. workers <= 0 selects GOMAXPROCS; a single
// worker (or n <= 1) runs inline.
//
// Screening uses this for per-row fan-out inside a channel, where the
// work items are uniform and a stealing pool buys nothing.
func ForEachChunk(workers, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
