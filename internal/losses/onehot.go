package losses

import (
	"fmt"

	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/parallel"
)

// OneHot expands a (B, 1, *S) label map into a float32 (B, numClasses, *S)
// tensor with a single 1 per voxel.
func OneHot[B tensor.Backend](labels Target, numClasses int, backend B) (*tensor.Tensor[float32, B], error) {
	raw := labels.Raw()
	shape := raw.Shape()
	if len(shape) < 2 || shape[1] != 1 {
		return nil, fmt.Errorf("%w: one-hot labels must have shape (B, 1, ...), got %v", ErrShapeMismatch, shape)
	}

	values, err := hostLabels(raw)
	if err != nil {
		return nil, err
	}
	if err := checkLabels(values, numClasses); err != nil {
		return nil, err
	}

	batch, _, spatial := layout(shape)
	outShape := shape.Clone()
	outShape[1] = numClasses
	return constant(oneHot(values, batch, numClasses, spatial), outShape, backend), nil
}

// oneHot writes labels of a (B, S) map into a (B, C, S) array. Labels must
// already be range-checked.
func oneHot(labels []int32, batch, channels, spatial int) []float32 {
	out := make([]float32, batch*channels*spatial)
	parallel.Range(batch*spatial, hostWork, func(lo, hi int) {
		for n := lo; n < hi; n++ {
			b, s := n/spatial, n%spatial
			out[(b*channels+int(labels[n]))*spatial+s] = 1
		}
	})
	return out
}
