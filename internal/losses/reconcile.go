package losses

import (
	"github.com/born-ml/born/tensor"
)

// reconcileTarget adapts a target for cross-entropy against input:
//
//  1. a single-channel target for a multi-channel input is squeezed to
//     (B, *S) int32 class indices;
//  2. with argmax set, a multi-channel target is collapsed to (B, *S) int32
//     class indices by its largest channel;
//  3. a non-float target becomes float32, the input dtype.
//
// Any other target is returned as is.
func reconcileTarget[B tensor.Backend](input *tensor.Tensor[float32, B], target Target, argmax bool) (Target, error) {
	raw := target.Raw()
	shape := raw.Shape()
	if len(shape) < 2 || len(input.Shape()) < 2 {
		return nil, &ShapeError{Op: "CrossEntropyLoss", Input: input.Shape(), Target: shape, Err: ErrShapeMismatch}
	}
	inputChannels, targetChannels := input.Shape()[1], shape[1]
	backend := input.Backend()

	switch {
	case inputChannels != targetChannels && targetChannels == 1:
		labels, err := hostLabels(raw)
		if err != nil {
			return nil, err
		}
		squeezed := append(tensor.Shape{shape[0]}, shape[2:]...)
		return tensor.FromSlice(append([]int32(nil), labels...), squeezed, backend)

	case argmax:
		values, err := hostFloat32(raw)
		if err != nil {
			return nil, err
		}
		batch, channels, spatial := layout(shape)
		squeezed := append(tensor.Shape{shape[0]}, shape[2:]...)
		return tensor.FromSlice(argmaxChannels(values, batch, channels, spatial), squeezed, backend)

	case !isFloating(raw.DType()):
		values, err := hostFloat32(raw)
		if err != nil {
			return nil, err
		}
		return tensor.FromSlice(values, shape.Clone(), backend)

	default:
		return target, nil
	}
}
