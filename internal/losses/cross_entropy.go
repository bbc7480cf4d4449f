package losses

import (
	"fmt"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
)

// CrossEntropyLoss computes weighted cross-entropy for dense (per-voxel)
// classification.
//
// Input holds raw logits of shape (B, C, *S). The target comes in one of two
// forms, told apart by rank:
//   - class indices of shape (B, *S), any numeric dtype
//   - class probabilities (one-hot or soft) of shape (B, C, *S)
//
// Mathematical Formulation:
//
//	l_n = -Σ_c w_c · y_{n,c} · log_softmax(x_n)_c
//
// For class indices y_{n,c} is the one-hot encoding of the label and the mean
// reduction divides by Σ_n w_{y_n}; for probabilities it divides by B·S.
//
// The loss is built from differentiable Born operations, so it backpropagates
// through any autodiff backend.
type CrossEntropyLoss[B tensor.Backend] struct {
	backend   B
	weight    []float32
	reduction Reduction
}

// NewCrossEntropyLoss creates a cross-entropy loss. weight is an optional
// per-class rescaling (nil means all ones).
func NewCrossEntropyLoss[B tensor.Backend](backend B, weight []float32, reduction Reduction) *CrossEntropyLoss[B] {
	var w []float32
	if weight != nil {
		w = append([]float32(nil), weight...)
	}
	return &CrossEntropyLoss[B]{
		backend:   backend,
		weight:    w,
		reduction: reduction,
	}
}

// Reduction returns the configured reduction.
func (c *CrossEntropyLoss[B]) Reduction() Reduction {
	return c.reduction
}

// Forward computes the loss. With ReductionNone the result has shape (B, *S);
// otherwise it has shape [1].
func (c *CrossEntropyLoss[B]) Forward(input *tensor.Tensor[float32, B], target Target) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	raw := target.Raw()
	targetShape := raw.Shape()
	if len(shape) < 2 {
		return nil, &ShapeError{Op: "CrossEntropyLoss", Input: shape, Target: targetShape, Err: ErrShapeMismatch}
	}

	batch, channels, spatial := layout(shape)
	if c.weight != nil && len(c.weight) != channels {
		return nil, fmt.Errorf("CrossEntropyLoss: %w: %d class weights for %d channels", ErrShapeMismatch, len(c.weight), channels)
	}

	rows := batch * spatial
	mask := make([]float32, rows*channels)
	var denom float32

	switch {
	case isIndexShape(shape, targetShape):
		labels, err := hostLabels(raw)
		if err != nil {
			return nil, err
		}
		if err := checkLabels(labels, channels); err != nil {
			return nil, err
		}
		for n, y := range labels {
			w := c.classWeight(int(y))
			mask[n*channels+int(y)] = w
			denom += w
		}

	case shape.Equal(targetShape):
		probs, err := hostFloat32(raw)
		if err != nil {
			return nil, err
		}
		for i, p := range hostChannelsLast(probs, batch, channels, spatial) {
			mask[i] = p * c.classWeight(i%channels)
		}
		denom = float32(rows)

	default:
		return nil, &ShapeError{Op: "CrossEntropyLoss", Input: shape, Target: targetShape, Err: ErrShapeMismatch}
	}

	logProbs := logSoftmax(channelsLast(input))
	picked := sumDim(constant(mask, tensor.Shape{rows, channels}, c.backend).Mul(logProbs), 1, false)

	switch c.reduction {
	case ReductionNone:
		lossShape := append([]int{batch}, shape[2:]...)
		return fill(0, picked).Sub(picked).Reshape(lossShape...), nil
	case ReductionSum:
		total := sumAll(picked)
		return fill(0, total).Sub(total), nil
	default:
		total := sumAll(picked)
		negated := fill(0, total).Sub(total)
		return negated.Div(fill(denom, negated)), nil
	}
}

// Parameters returns nil: the loss has no trainable parameters.
func (c *CrossEntropyLoss[B]) Parameters() []*nn.Parameter[B] {
	return nil
}

func (c *CrossEntropyLoss[B]) classWeight(class int) float32 {
	if c.weight == nil {
		return 1
	}
	return c.weight[class]
}

// isIndexShape reports whether target is (B, *S) for an input of (B, C, *S).
func isIndexShape(input, target tensor.Shape) bool {
	if len(target) != len(input)-1 || target[0] != input[0] {
		return false
	}
	return target[1:].Equal(input[2:])
}
