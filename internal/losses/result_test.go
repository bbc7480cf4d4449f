package losses

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func logf(n int) float32 {
	return float32(math.Log(float64(n)))
}

func TestResult_Weighted(t *testing.T) {
	backend := newBackend()
	r := Result[Backend]{
		Region: scalar(0.4, backend),
		Class:  scalar(1.5, backend),
	}

	assert.InDelta(t, 0.4+1.5, first(r.Weighted(1, 1)), 1e-6)
	assert.InDelta(t, 0.2+3.0, first(r.Weighted(0.5, 2)), 1e-6)
	assert.InDelta(t, 0, first(r.Weighted(0, 0)), 1e-6)
}
