package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange_CoversEveryIndexOnce(t *testing.T) {
	configs := map[string]Config{
		"default":    DefaultConfig(),
		"inline":     {Workers: 1, MinChunk: 1},
		"many":       {Workers: 8, MinChunk: 1},
		"uneven":     {Workers: 3, MinChunk: 5},
		"zero chunk": {Workers: 4},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{0, 1, 7, 100, 10_000} {
				hits := make([]int32, n)
				Range(n, cfg, func(lo, hi int) {
					for i := lo; i < hi; i++ {
						atomic.AddInt32(&hits[i], 1)
					}
				})
				for i, h := range hits {
					if !assert.EqualValues(t, 1, h, "n=%d index %d", n, i) {
						return
					}
				}
			}
		})
	}
}

func TestRange_SmallInputStaysInline(t *testing.T) {
	var (
		mu    sync.Mutex
		calls [][2]int
	)
	Range(100, Config{Workers: 8, MinChunk: 4096}, func(lo, hi int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, [2]int{lo, hi})
	})
	assert.Equal(t, [][2]int{{0, 100}}, calls)
}

func TestRange_ChunksRespectMinimum(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks int
	)
	Range(1000, Config{Workers: 16, MinChunk: 300}, func(lo, hi int) {
		mu.Lock()
		defer mu.Unlock()
		chunks++
		if hi != 1000 {
			assert.GreaterOrEqual(t, hi-lo, 300)
		}
	})
	assert.Equal(t, 4, chunks)
}
