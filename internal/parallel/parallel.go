// Package parallel splits host-side per-voxel loops across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how Range divides work.
type Config struct {
	Workers  int // Upper bound on goroutines; 1 or less runs inline.
	MinChunk int // Smallest range handed to one goroutine.
}

// DefaultConfig uses one worker per usable CPU and chunks large enough that
// small volumes stay on the calling goroutine.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.GOMAXPROCS(0),
		MinChunk: 4096,
	}
}

// Range calls f on disjoint [lo, hi) ranges that together cover [0, n) and
// returns once every call has finished. f must only write state owned by
// its range.
func Range(n int, cfg Config, f func(lo, hi int)) {
	minChunk := max(cfg.MinChunk, 1)
	if cfg.Workers <= 1 || n <= minChunk {
		f(0, n)
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, minChunk)
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(lo, hi)
		}()
	}
	wg.Wait()
}
