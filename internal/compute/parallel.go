package compute

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count: zero or negative means one
// worker per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ForEachChunk splits [0, n) into contiguous chunks, at most one per
// worker, and runs fn concurrently. fn receives its worker index so
// callers can accumulate into private slots and reduce in index order
// afterwards, which keeps the reduction deterministic for a fixed
// worker count. Chunks smaller than minChunk are not worth a goroutine;
// in that case fn runs once on the whole range with worker index 0.
func ForEachChunk(n, minChunk, workers int, fn func(worker, start, end int)) {
	if workers <= 1 || n <= minChunk {
		fn(0, 0, n)
		return
	}

	if w := n / minChunk; w < workers {
		workers = w
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(worker, s, e int) {
			defer wg.Done()
			fn(worker, s, e)
		}(w, start, end)
	}

	wg.Wait()
}
