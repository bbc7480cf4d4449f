package losses

import (
	"fmt"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/logging"
)

// Activation is applied to the (B·S, C) channels-last prediction before the
// Dice score is computed.
type Activation[B tensor.Backend] func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

// DiceConfig configures a DiceLoss.
type DiceConfig[B tensor.Backend] struct {
	IncludeBackground bool          // If false, channel 0 is excluded from the score
	ToOneHotY         bool          // Convert a (B, 1, *S) label target to one-hot
	Sigmoid           bool          // Apply sigmoid to the prediction
	Softmax           bool          // Apply softmax over channels to the prediction
	OtherAct          Activation[B] // Any other activation; exclusive with Sigmoid/Softmax
	SquaredPred       bool          // Square prediction and target in the denominator
	Jaccard           bool          // Compute soft IoU instead of Dice
	Reduction         Reduction     // mean, sum or none
	SmoothNr          float32       // Added to the numerator
	SmoothDr          float32       // Added to the denominator
	Batch             bool          // Sum intersection and union over the batch before dividing
}

// DefaultDiceConfig returns the configuration used when nothing is overridden.
func DefaultDiceConfig[B tensor.Backend]() DiceConfig[B] {
	return DiceConfig[B]{
		IncludeBackground: true,
		Reduction:         ReductionMean,
		SmoothNr:          1e-5,
		SmoothDr:          1e-5,
	}
}

// DiceLoss computes the soft Dice loss between a (B, C, *S) prediction and
// a target of the same shape (or a (B, 1, *S) label map with ToOneHotY).
//
//	f = 1 - (2·Σ p·g + smooth_nr) / (Σ g + Σ p + smooth_dr)
//
// Sums run over the spatial dimensions (and the batch when Batch is set),
// giving one value per (batch, class) or per class before reduction.
// With Jaccard the denominator becomes 2·(Σ g + Σ p - Σ p·g).
type DiceLoss[B tensor.Backend] struct {
	cfg     DiceConfig[B]
	backend B
}

// NewDiceLoss creates a Dice loss.
func NewDiceLoss[B tensor.Backend](cfg DiceConfig[B], backend B) (*DiceLoss[B], error) {
	active := 0
	for _, on := range []bool{cfg.Sigmoid, cfg.Softmax, cfg.OtherAct != nil} {
		if on {
			active++
		}
	}
	if active > 1 {
		return nil, ErrIncompatibleActivation
	}
	if !cfg.Reduction.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownReduction, cfg.Reduction)
	}
	return &DiceLoss[B]{cfg: cfg, backend: backend}, nil
}

// Forward computes the loss. With ReductionNone the result has shape (B, C')
// or (C') when Batch is set, C' being the number of scored channels.
func (d *DiceLoss[B]) Forward(input *tensor.Tensor[float32, B], target Target) (*tensor.Tensor[float32, B], error) {
	log := logging.Logger()
	shape := input.Shape()
	raw := target.Raw()
	targetShape := raw.Shape()
	if len(shape) < 3 {
		return nil, &ShapeError{Op: "DiceLoss", Input: shape, Target: targetShape, Err: ErrShapeMismatch}
	}
	batch, channels, spatial := layout(shape)

	var truth []float32
	if d.cfg.ToOneHotY && channels == 1 {
		log.Warn("single channel prediction, `to_onehot_y=true` ignored")
	}
	if d.cfg.ToOneHotY && channels > 1 {
		if len(targetShape) != len(shape) || targetShape[1] != 1 {
			return nil, &ShapeError{Op: "DiceLoss", Input: shape, Target: targetShape, Err: ErrShapeMismatch}
		}
		labels, err := hostLabels(raw)
		if err != nil {
			return nil, err
		}
		if err := checkLabels(labels, channels); err != nil {
			return nil, err
		}
		truth = oneHot(labels, batch, channels, spatial)
		targetShape = shape
	} else {
		values, err := hostFloat32(raw)
		if err != nil {
			return nil, err
		}
		truth = values
	}
	if !targetShape.Equal(shape) {
		return nil, &ShapeError{Op: "DiceLoss", Input: shape, Target: targetShape, Err: ErrShapeMismatch}
	}

	pred := channelsLast(input)
	switch {
	case d.cfg.Sigmoid:
		pred = sigmoid(pred)
	case d.cfg.Softmax && channels == 1:
		log.Warn("single channel prediction, `softmax=true` ignored")
	case d.cfg.Softmax:
		pred = softmax(pred)
	case d.cfg.OtherAct != nil:
		pred = d.cfg.OtherAct(pred)
	}

	rows := batch * spatial
	truth = hostChannelsLast(truth, batch, channels, spatial)
	scored := channels
	if !d.cfg.IncludeBackground {
		if channels == 1 {
			log.Warn("single channel prediction, `include_background=false` ignored")
		} else {
			pred = dropFirstColumn(pred)
			truth = hostDropFirstColumn(truth, rows, channels)
			scored = channels - 1
		}
	}
	truthT := func() *tensor.Tensor[float32, B] {
		return constant(truth, tensor.Shape{rows, scored}, d.backend)
	}

	// Reduce over voxels: dim 0 of (B·S, C') when batched, else dim 1 of (B, S, C').
	sum := func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
		if d.cfg.Batch {
			return sumDim(x, 0, false)
		}
		return sumDim(x.Reshape(batch, spatial, scored), 1, false)
	}

	// pred is only ever a right operand below; left operands are fresh.
	intersection := sum(truthT().Mul(pred))
	var denominator *tensor.Tensor[float32, B]
	if d.cfg.SquaredPred {
		predSq := fill(1, pred).Mul(pred).Mul(pred)
		truthSq := truthT().Mul(truthT())
		denominator = sum(truthSq).Add(sum(predSq))
	} else {
		denominator = sum(truthT()).Add(sum(pred))
	}

	if d.cfg.Jaccard {
		diff := denominator.Sub(intersection)
		denominator = fill(2, diff).Mul(diff)
	}

	numerator := fill(2, intersection).Mul(intersection)
	numerator = numerator.Add(fill(d.cfg.SmoothNr, numerator))
	denominator = denominator.Add(fill(d.cfg.SmoothDr, denominator))
	f := fill(1, numerator).Sub(numerator.Div(denominator))

	return reduce(f, d.cfg.Reduction), nil
}

// Parameters returns nil: the loss has no trainable parameters.
func (d *DiceLoss[B]) Parameters() []*nn.Parameter[B] {
	return nil
}
