package losses

import (
	"testing"

	"github.com/born-ml/born/autodiff"
	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
	"github.com/stretchr/testify/require"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func newBackend() Backend {
	return autodiff.New(cpu.New())
}

func fromSlice[T tensor.DType](t *testing.T, backend Backend, data []T, shape ...int) *tensor.Tensor[T, Backend] {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), backend)
	require.NoError(t, err)
	return x
}

func scalar(v float32, backend Backend) *tensor.Tensor[float32, Backend] {
	return tensor.Full[float32](tensor.Shape{1}, v, backend)
}

// first returns the single value of a reduced loss.
func first(x *tensor.Tensor[float32, Backend]) float32 {
	return x.Data()[0]
}

// rampLogits returns deterministic, non-uniform logits.
func rampLogits(n int) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = float32((i*7)%11)/5 - 1
	}
	return data
}

// recordingCriterion stands in for a loss term and remembers its inputs.
type recordingCriterion struct {
	calls  int
	input  *tensor.Tensor[float32, Backend]
	target Target
}

func (r *recordingCriterion) Forward(input *tensor.Tensor[float32, Backend], target Target) (*tensor.Tensor[float32, Backend], error) {
	r.calls++
	r.input = input
	r.target = target
	return scalar(0, input.Backend()), nil
}
