package losses

import (
	"fmt"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
)

// DiceCEConfig configures a DiceCELoss. CEWeight and LambdaCE only affect
// the cross-entropy term, Reduction affects both, everything else only the
// Dice term.
type DiceCEConfig[B tensor.Backend] struct {
	IncludeBackground bool
	ToOneHotY         bool
	Sigmoid           bool
	Softmax           bool
	OtherAct          Activation[B]
	SquaredPred       bool
	Jaccard           bool
	Reduction         string // "mean" or "sum"
	SmoothNr          float32
	SmoothDr          float32
	Batch             bool
	CEWeight          []float32 // Per-class cross-entropy weights, nil for uniform
	LambdaDice        float32   // Trade-off weight for the Dice term, >= 0
	LambdaCE          float32   // Trade-off weight for the cross-entropy term, >= 0

	// ArgmaxTarget feeds cross-entropy class indices taken by argmax over a
	// multi-channel target instead of the target itself, for consumers that
	// cannot take probability targets.
	ArgmaxTarget bool
}

// DefaultDiceCEConfig returns the default configuration: background
// included, mean reduction, smoothing 1e-5, both lambdas 1.
func DefaultDiceCEConfig[B tensor.Backend]() DiceCEConfig[B] {
	return DiceCEConfig[B]{
		IncludeBackground: true,
		Reduction:         "mean",
		SmoothNr:          1e-5,
		SmoothDr:          1e-5,
		LambdaDice:        1,
		LambdaCE:          1,
	}
}

// DiceCELoss computes a Dice loss and a cross-entropy loss side by side.
//
// Forward returns both terms uncombined; LambdaDice and LambdaCE are kept for
// the caller, who can apply them with Total or Result.Weighted.
//
// Example:
//
//	loss, err := losses.NewDiceCELoss(losses.DefaultDiceCEConfig[Backend](), backend)
//	res, err := loss.Forward(logits, labels) // logits (B, C, H, W, D), labels (B, 1, H, W, D)
//	total := loss.Total(res)
type DiceCELoss[B tensor.Backend] struct {
	dice       criterion[B]
	ce         criterion[B]
	lambdaDice float32
	lambdaCE   float32
	argmax     bool
}

// NewDiceCELoss creates a DiceCELoss.
func NewDiceCELoss[B tensor.Backend](cfg DiceCEConfig[B], backend B) (*DiceCELoss[B], error) {
	reduction, err := lookupReduction(cfg.Reduction, ReductionMean, ReductionSum)
	if err != nil {
		return nil, err
	}

	dice, err := NewDiceLoss(DiceConfig[B]{
		IncludeBackground: cfg.IncludeBackground,
		ToOneHotY:         cfg.ToOneHotY,
		Sigmoid:           cfg.Sigmoid,
		Softmax:           cfg.Softmax,
		OtherAct:          cfg.OtherAct,
		SquaredPred:       cfg.SquaredPred,
		Jaccard:           cfg.Jaccard,
		Reduction:         reduction,
		SmoothNr:          cfg.SmoothNr,
		SmoothDr:          cfg.SmoothDr,
		Batch:             cfg.Batch,
	}, backend)
	if err != nil {
		return nil, err
	}

	if cfg.LambdaDice < 0 {
		return nil, fmt.Errorf("lambda_dice %v: %w", cfg.LambdaDice, ErrNegativeWeight)
	}
	if cfg.LambdaCE < 0 {
		return nil, fmt.Errorf("lambda_ce %v: %w", cfg.LambdaCE, ErrNegativeWeight)
	}

	return &DiceCELoss[B]{
		dice:       dice,
		ce:         NewCrossEntropyLoss(backend, cfg.CEWeight, reduction),
		lambdaDice: cfg.LambdaDice,
		lambdaCE:   cfg.LambdaCE,
		argmax:     cfg.ArgmaxTarget,
	}, nil
}

// Forward computes (dice, ce) for input of shape (B, C, *S) and a target of
// shape (B, C, *S) or (B, 1, *S).
//
// The Dice term sees the target unchanged; the cross-entropy term sees it
// reconciled to class indices or float32 probabilities.
func (l *DiceCELoss[B]) Forward(input *tensor.Tensor[float32, B], target Target) (Result[B], error) {
	inputShape, targetShape := input.Shape(), target.Raw().Shape()
	if len(inputShape) != len(targetShape) {
		return Result[B]{}, &ShapeError{Op: "DiceCELoss", Input: inputShape, Target: targetShape, Err: ErrRankMismatch}
	}

	diceLoss, err := l.dice.Forward(input, target)
	if err != nil {
		return Result[B]{}, err
	}

	ceTarget, err := reconcileTarget(input, target, l.argmax)
	if err != nil {
		return Result[B]{}, err
	}
	ceLoss, err := l.ce.Forward(input, ceTarget)
	if err != nil {
		return Result[B]{}, err
	}

	return Result[B]{Region: diceLoss, Class: ceLoss}, nil
}

// LambdaDice returns the Dice trade-off weight.
func (l *DiceCELoss[B]) LambdaDice() float32 { return l.lambdaDice }

// LambdaCE returns the cross-entropy trade-off weight.
func (l *DiceCELoss[B]) LambdaCE() float32 { return l.lambdaCE }

// Total applies the configured trade-off weights to a Forward result.
func (l *DiceCELoss[B]) Total(r Result[B]) *tensor.Tensor[float32, B] {
	return r.Weighted(l.lambdaDice, l.lambdaCE)
}

// Parameters returns nil: the loss has no trainable parameters.
func (l *DiceCELoss[B]) Parameters() []*nn.Parameter[B] {
	return nil
}
