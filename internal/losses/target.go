package losses

import (
	"fmt"

	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/parallel"
)

// Target is any Born tensor used as ground truth. Every *tensor.Tensor[T, B]
// satisfies it, so label maps can be passed in whatever dtype they were
// loaded with.
type Target interface {
	Raw() *tensor.RawTensor
}

// isFloating reports whether dt holds floating-point values.
func isFloating(dt tensor.DataType) bool {
	return dt == tensor.Float32 || dt == tensor.Float64
}

// hostFloat32 returns the target values as float32. Float32 data is returned
// without copying and must not be modified.
func hostFloat32(raw *tensor.RawTensor) ([]float32, error) {
	switch raw.DType() {
	case tensor.Float32:
		return raw.AsFloat32(), nil
	case tensor.Float64:
		return convert(raw.AsFloat64(), func(v float64) float32 { return float32(v) }), nil
	case tensor.Int32:
		return convert(raw.AsInt32(), func(v int32) float32 { return float32(v) }), nil
	case tensor.Int64:
		return convert(raw.AsInt64(), func(v int64) float32 { return float32(v) }), nil
	case tensor.Uint8:
		return convert(raw.AsUint8(), func(v uint8) float32 { return float32(v) }), nil
	case tensor.Bool:
		return convert(raw.AsBool(), func(v bool) float32 {
			if v {
				return 1
			}
			return 0
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, raw.DType())
	}
}

// hostLabels returns the target values truncated to int32 class indices.
func hostLabels(raw *tensor.RawTensor) ([]int32, error) {
	switch raw.DType() {
	case tensor.Int32:
		return raw.AsInt32(), nil
	case tensor.Int64:
		return convert(raw.AsInt64(), func(v int64) int32 { return int32(v) }), nil
	case tensor.Uint8:
		return convert(raw.AsUint8(), func(v uint8) int32 { return int32(v) }), nil
	case tensor.Float32:
		return convert(raw.AsFloat32(), func(v float32) int32 { return int32(v) }), nil
	case tensor.Float64:
		return convert(raw.AsFloat64(), func(v float64) int32 { return int32(v) }), nil
	case tensor.Bool:
		return convert(raw.AsBool(), func(v bool) int32 {
			if v {
				return 1
			}
			return 0
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, raw.DType())
	}
}

// checkLabels verifies every label indexes one of numClasses classes.
func checkLabels(labels []int32, numClasses int) error {
	for i, l := range labels {
		if l < 0 || int(l) >= numClasses {
			return fmt.Errorf("%w: label %d at flat index %d, want [0, %d)", ErrLabelOutOfRange, l, i, numClasses)
		}
	}
	return nil
}

// argmaxChannels collapses a (B, C, *S) array to (B, *S) class indices.
// Ties resolve to the lowest channel.
func argmaxChannels(data []float32, batch, channels, spatial int) []int32 {
	out := make([]int32, batch*spatial)
	parallel.Range(batch*spatial, hostWork, func(lo, hi int) {
		for n := lo; n < hi; n++ {
			base := (n/spatial)*channels*spatial + n%spatial
			best, bestVal := 0, data[base]
			for c := 1; c < channels; c++ {
				if v := data[base+c*spatial]; v > bestVal {
					best, bestVal = c, v
				}
			}
			out[n] = int32(best)
		}
	})
	return out
}

func convert[S, D any](src []S, f func(S) D) []D {
	dst := make([]D, len(src))
	for i, v := range src {
		dst[i] = f(v)
	}
	return dst
}
