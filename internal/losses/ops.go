package losses

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/parallel"
)

// hostWork splits host-side per-voxel preparation.
var hostWork = parallel.DefaultConfig()

// layout splits a (B, C, *S) shape into batch, channel and flattened spatial sizes.
func layout(shape tensor.Shape) (batch, channels, spatial int) {
	spatial = 1
	for _, d := range shape[2:] {
		spatial *= d
	}
	return shape[0], shape[1], spatial
}

// constant uploads host data that takes no part in differentiation.
func constant[B tensor.Backend](data []float32, shape tensor.Shape, b B) *tensor.Tensor[float32, B] {
	t, err := tensor.FromSlice(data, shape, b)
	if err != nil {
		panic(err)
	}
	return t
}

// fill returns a constant tensor with the shape of like. Constants must match
// their operand's rank for autodiff to reduce the gradient.
func fill[B tensor.Backend](v float32, like *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.Full[float32](like.Shape().Clone(), v, like.Backend())
}

// sumDim sums x along dim through the backend so autodiff backends record it.
func sumDim[B tensor.Backend](x *tensor.Tensor[float32, B], dim int, keepDim bool) *tensor.Tensor[float32, B] {
	b := x.Backend()
	return tensor.New[float32, B](b.SumDim(x.Raw(), dim, keepDim), b)
}

// sumAll sums every element into a tensor of shape [1].
func sumAll[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return sumDim(x.Reshape(x.NumElements()), 0, true)
}

// reduce applies a reduction to a per-element loss.
func reduce[B tensor.Backend](x *tensor.Tensor[float32, B], r Reduction) *tensor.Tensor[float32, B] {
	switch r {
	case ReductionSum:
		return sumAll(x)
	case ReductionNone:
		return x
	default:
		total := sumAll(x)
		return total.Div(fill(float32(x.NumElements()), total))
	}
}

// channelsLast reshapes a (B, C, *S) tensor into (B*S, C) rows, one per voxel.
func channelsLast[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	batch, channels, spatial := layout(x.Shape())
	return x.Reshape(batch, channels, spatial).Transpose(0, 2, 1).Reshape(batch*spatial, channels)
}

// hostChannelsLast is channelsLast for host data that needs no gradient.
func hostChannelsLast(data []float32, batch, channels, spatial int) []float32 {
	out := make([]float32, len(data))
	parallel.Range(batch*spatial, hostWork, func(lo, hi int) {
		for n := lo; n < hi; n++ {
			b, s := n/spatial, n%spatial
			for c := 0; c < channels; c++ {
				out[n*channels+c] = data[(b*channels+c)*spatial+s]
			}
		}
	})
	return out
}

// logSoftmax computes log-probabilities over the last dimension of a
// (N, C) tensor.
//
//	log_softmax(x)_i = (x_i - m) - log(Σ_j exp(x_j - m)),  m = max_j x_j
//
// The row maximum is taken on the host and enters as a constant: the result
// does not depend on m, so no gradient has to flow through it.
//
// x is only ever a right operand: plain backends may overwrite the left one.
func logSoftmax[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	rows, cols := shape[0], shape[1]
	data := x.Data()

	negMax := make([]float32, rows)
	for r := 0; r < rows; r++ {
		row := data[r*cols : (r+1)*cols]
		m := row[0]
		for _, v := range row[1:] {
			if v > m {
				m = v
			}
		}
		negMax[r] = -m
	}

	shifted := func() *tensor.Tensor[float32, B] {
		return constant(negMax, tensor.Shape{rows, 1}, x.Backend()).Add(x)
	}
	logSumExp := sumDim(shifted().Exp(), 1, true).Log()
	return shifted().Sub(logSumExp)
}

// softmax computes probabilities over the last dimension of a (N, C) tensor.
func softmax[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return logSoftmax(x).Exp()
}

// sigmoid applies the logistic function, using the backend's own kernel when
// it has one (autodiff backends record it as a single op).
func sigmoid[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	type sigmoidBackend interface {
		Sigmoid(x *tensor.RawTensor) *tensor.RawTensor
	}

	b := x.Backend()
	if sb, ok := any(b).(sigmoidBackend); ok {
		return tensor.New[float32, B](sb.Sigmoid(x.Raw()), b)
	}

	denom := fill(1, x).Add(fill(0, x).Sub(x).Exp())
	return fill(1, x).Div(denom)
}

// dropFirstColumn removes channel 0 from a (N, C) tensor. It multiplies by a
// (C, C-1) selection matrix so the gradient reaches the kept channels.
func dropFirstColumn[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	channels := x.Shape()[1]
	sel := make([]float32, channels*(channels-1))
	for c := 1; c < channels; c++ {
		sel[c*(channels-1)+c-1] = 1
	}
	return x.MatMul(constant(sel, tensor.Shape{channels, channels - 1}, x.Backend()))
}

// hostDropFirstColumn is dropFirstColumn for host data in (N, C) layout.
func hostDropFirstColumn(data []float32, rows, channels int) []float32 {
	out := make([]float32, 0, rows*(channels-1))
	for r := 0; r < rows; r++ {
		out = append(out, data[r*channels+1:(r+1)*channels]...)
	}
	return out
}
