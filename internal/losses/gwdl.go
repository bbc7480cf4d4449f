package losses

import (
	"fmt"
	"strings"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/parallel"
)

// WeightingMode selects the class weights of the Generalized Wasserstein
// Dice loss.
type WeightingMode int

const (
	// WeightingDefault gives background weight 0 and every other class weight 1.
	WeightingDefault WeightingMode = iota
	// WeightingGDL weights each class by 1/(volume+1), as in the Generalized
	// Dice loss.
	WeightingGDL
)

// String returns the weighting mode name.
func (m WeightingMode) String() string {
	switch m {
	case WeightingDefault:
		return "default"
	case WeightingGDL:
		return "GDL"
	default:
		return fmt.Sprintf("WeightingMode(%d)", int(m))
	}
}

// LookupWeightingMode resolves "default" or "GDL" (case-insensitive).
func LookupWeightingMode(name string) (WeightingMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "default":
		return WeightingDefault, nil
	case "gdl":
		return WeightingGDL, nil
	default:
		return 0, fmt.Errorf("%w: %q is not one of [default GDL]", ErrUnknownWeightingMode, name)
	}
}

const gwdlSmooth = 1e-5

// GeneralizedWassersteinDiceLoss is the Dice loss generalized with a class
// distance matrix M (Fidon et al., 2017). Confusing two distant classes costs
// more than confusing two close ones.
//
// For voxel n with label y_n and softmax probabilities p_n:
//
//	d_n = Σ_c M[y_n, c] · p_{n,c}
//	TP  = Σ_n α_{y_n} · (1 - d_n)
//	GWD = (2·TP + ε) / (den + ε)
//
// where den = Σ_n α_{y_n}·(2 - d_n) in GDL mode and 2·TP + Σ_n d_n in default
// mode. One loss value 1 - GWD is computed per batch item before reduction.
type GeneralizedWassersteinDiceLoss[B tensor.Backend] struct {
	backend    B
	dist       []float32 // row-major C×C copy of the matrix
	numClasses int
	mode       WeightingMode
	reduction  Reduction
}

// NewGeneralizedWassersteinDiceLoss creates the loss for a square distance
// matrix whose size equals the number of prediction channels.
func NewGeneralizedWassersteinDiceLoss[B tensor.Backend](
	distMatrix *tensor.Tensor[float32, B],
	mode WeightingMode,
	reduction Reduction,
) (*GeneralizedWassersteinDiceLoss[B], error) {
	shape := distMatrix.Shape()
	if len(shape) != 2 || shape[0] != shape[1] {
		return nil, fmt.Errorf("GeneralizedWassersteinDiceLoss: %w: distance matrix must be square, got %v", ErrShapeMismatch, shape)
	}
	if mode != WeightingDefault && mode != WeightingGDL {
		return nil, fmt.Errorf("%w: %v", ErrUnknownWeightingMode, mode)
	}
	if !reduction.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownReduction, reduction)
	}

	return &GeneralizedWassersteinDiceLoss[B]{
		backend:    distMatrix.Backend(),
		dist:       append([]float32(nil), distMatrix.Data()...),
		numClasses: shape[0],
		mode:       mode,
		reduction:  reduction,
	}, nil
}

// Forward computes the loss for logits of shape (B, C, *S) and a label map of
// shape (B, 1, *S) or (B, *S). With ReductionNone the result has shape (B).
func (g *GeneralizedWassersteinDiceLoss[B]) Forward(input *tensor.Tensor[float32, B], target Target) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	raw := target.Raw()
	if len(shape) < 3 || shape[1] != g.numClasses {
		return nil, &ShapeError{Op: "GeneralizedWassersteinDiceLoss", Input: shape, Target: raw.Shape(), Err: ErrShapeMismatch}
	}
	batch, channels, spatial := layout(shape)
	if raw.NumElements() != batch*spatial {
		return nil, &ShapeError{Op: "GeneralizedWassersteinDiceLoss", Input: shape, Target: raw.Shape(), Err: ErrShapeMismatch}
	}

	labels, err := hostLabels(raw)
	if err != nil {
		return nil, err
	}
	if err := checkLabels(labels, channels); err != nil {
		return nil, err
	}

	rows := batch * spatial
	costs := make([]float32, rows*channels)
	parallel.Range(rows, hostWork, func(lo, hi int) {
		for n := lo; n < hi; n++ {
			y := int(labels[n])
			copy(costs[n*channels:(n+1)*channels], g.dist[y*channels:(y+1)*channels])
		}
	})

	alpha := g.alpha(labels, batch, spatial)
	voxelAlpha := make([]float32, rows)
	for n, y := range labels {
		voxelAlpha[n] = alpha[(n/spatial)*channels+int(y)]
	}

	probs := softmax(channelsLast(input))
	distMap := sumDim(constant(costs, tensor.Shape{rows, channels}, g.backend).Mul(probs), 1, false).Reshape(batch, spatial)
	alphaT := func() *tensor.Tensor[float32, B] {
		return constant(voxelAlpha, tensor.Shape{batch, spatial}, g.backend)
	}

	// distMap and truePos are reused, so they only appear as right operands.
	truePos := sumDim(alphaT().Mul(fill(1, distMap).Sub(distMap)), 1, false)

	var denom *tensor.Tensor[float32, B]
	if g.mode == WeightingGDL {
		denom = sumDim(alphaT().Mul(fill(2, distMap).Sub(distMap)), 1, false)
	} else {
		denom = fill(2, truePos).Mul(truePos).Add(sumDim(distMap, 1, false))
	}

	numerator := fill(2, truePos).Mul(truePos)
	numerator = numerator.Add(fill(gwdlSmooth, numerator))
	denom = denom.Add(fill(gwdlSmooth, denom))
	wassDice := numerator.Div(denom)
	return reduce(fill(1, wassDice).Sub(wassDice), g.reduction), nil
}

// alpha returns the (B, C) class weights.
func (g *GeneralizedWassersteinDiceLoss[B]) alpha(labels []int32, batch, spatial int) []float32 {
	channels := g.numClasses
	alpha := make([]float32, batch*channels)

	if g.mode == WeightingGDL {
		volumes := make([]float32, batch*channels)
		for n, y := range labels {
			volumes[(n/spatial)*channels+int(y)]++
		}
		for i, v := range volumes {
			alpha[i] = 1 / (v + 1)
		}
		return alpha
	}

	for i := range alpha {
		if i%channels != 0 {
			alpha[i] = 1
		}
	}
	return alpha
}

// Parameters returns nil: the loss has no trainable parameters.
func (g *GeneralizedWassersteinDiceLoss[B]) Parameters() []*nn.Parameter[B] {
	return nil
}
