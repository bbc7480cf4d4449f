package losses

import "github.com/born-ml/born/tensor"

// criterion is a single loss term of a compound loss.
type criterion[B tensor.Backend] interface {
	Forward(input *tensor.Tensor[float32, B], target Target) (*tensor.Tensor[float32, B], error)
}

var (
	_ criterion[tensor.Backend] = (*DiceLoss[tensor.Backend])(nil)
	_ criterion[tensor.Backend] = (*CrossEntropyLoss[tensor.Backend])(nil)
	_ criterion[tensor.Backend] = (*GeneralizedWassersteinDiceLoss[tensor.Backend])(nil)
)
