// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// chunks returns [start, end) ranges covering items, at most one per CPU.
func chunks(items int) [][2]int {
	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	out := make([][2]int, 0, numWorkers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// Parallelize runs fn over [0, items) split into one range per CPU core and
// waits for all ranges to finish.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	var wg sync.WaitGroup
	for _, c := range chunks(items) {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(c[0], c[1])
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially on the whole range when
// items <= threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}

// ParallelizeErr is ParallelizeWithThreshold for range functions that can
// fail. It returns the error of the lowest failing range, so the result does
// not depend on goroutine scheduling.
func ParallelizeErr(items int, threshold int, fn func(start, end int) error) error {
	if items <= 0 {
		return nil
	}
	if items <= threshold {
		return fn(0, items)
	}

	ranges := chunks(items)
	errs := make([]error, len(ranges))
	var wg sync.WaitGroup
	for i, c := range ranges {
		wg.Add(1)
		go func(i, s, e int) {
			defer wg.Done()
			errs[i] = fn(s, e)
		}(i, c[0], c[1])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
