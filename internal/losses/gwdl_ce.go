package losses

import (
	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
)

// GWDLCEConfig configures a GWDLCELoss.
type GWDLCEConfig struct {
	WeightingMode string    // "default" or "GDL"
	Reduction     string    // "mean", "sum" or "none"
	CEWeight      []float32 // Per-class cross-entropy weights, nil for uniform
	LambdaDice    float32   // Stored for the caller, not applied
	LambdaCE      float32   // Stored for the caller, not applied
}

// DefaultGWDLCEConfig returns GDL weighting, mean reduction and unit lambdas.
func DefaultGWDLCEConfig() GWDLCEConfig {
	return GWDLCEConfig{
		WeightingMode: "GDL",
		Reduction:     "mean",
		LambdaDice:    1,
		LambdaCE:      1,
	}
}

// GWDLCELoss computes a Generalized Wasserstein Dice loss and a
// cross-entropy loss side by side and returns both uncombined.
type GWDLCELoss[B tensor.Backend] struct {
	gwdl       criterion[B]
	ce         criterion[B]
	lambdaDice float32
	lambdaCE   float32
}

// NewGWDLCELoss creates a GWDLCELoss around a distance matrix, typically
// from distance.Build. The matrix backend is used for all loss tensors.
func NewGWDLCELoss[B tensor.Backend](distMatrix *tensor.Tensor[float32, B], cfg GWDLCEConfig) (*GWDLCELoss[B], error) {
	mode, err := LookupWeightingMode(cfg.WeightingMode)
	if err != nil {
		return nil, err
	}
	reduction, err := LookupReduction(cfg.Reduction)
	if err != nil {
		return nil, err
	}

	gwdl, err := NewGeneralizedWassersteinDiceLoss(distMatrix, mode, reduction)
	if err != nil {
		return nil, err
	}

	return &GWDLCELoss[B]{
		gwdl:       gwdl,
		ce:         NewCrossEntropyLoss(distMatrix.Backend(), cfg.CEWeight, reduction),
		lambdaDice: cfg.LambdaDice,
		lambdaCE:   cfg.LambdaCE,
	}, nil
}

// Forward computes (gwdl, ce) for logits of shape (B, C, *S).
//
// Cross-entropy sees the target reconciled (a single-channel target becomes
// int32 class indices, a non-float one becomes float32); the Wasserstein term
// sees it unchanged.
func (l *GWDLCELoss[B]) Forward(prediction *tensor.Tensor[float32, B], target Target) (Result[B], error) {
	ceTarget, err := reconcileTarget(prediction, target, false)
	if err != nil {
		return Result[B]{}, err
	}
	ceLoss, err := l.ce.Forward(prediction, ceTarget)
	if err != nil {
		return Result[B]{}, err
	}

	gwdlLoss, err := l.gwdl.Forward(prediction, target)
	if err != nil {
		return Result[B]{}, err
	}

	return Result[B]{Region: gwdlLoss, Class: ceLoss}, nil
}

// LambdaDice returns the Wasserstein Dice trade-off weight.
func (l *GWDLCELoss[B]) LambdaDice() float32 { return l.lambdaDice }

// LambdaCE returns the cross-entropy trade-off weight.
func (l *GWDLCELoss[B]) LambdaCE() float32 { return l.lambdaCE }

// Total applies the stored trade-off weights to a Forward result.
func (l *GWDLCELoss[B]) Total(r Result[B]) *tensor.Tensor[float32, B] {
	return r.Weighted(l.lambdaDice, l.lambdaCE)
}

// Parameters returns nil: the loss has no trainable parameters.
func (l *GWDLCELoss[B]) Parameters() []*nn.Parameter[B] {
	return nil
}
