// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package losses

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/losses"
)

// Target is any tensor used as ground truth.
type Target = losses.Target

// Result holds the uncombined terms of a compound loss.
type Result[B tensor.Backend] = losses.Result[B]

// Reduction is the policy for aggregating per-element loss values.
type Reduction = losses.Reduction

// Reductions.
const (
	ReductionMean = losses.ReductionMean
	ReductionSum  = losses.ReductionSum
	ReductionNone = losses.ReductionNone
)

// LookupReduction resolves "mean", "sum" or "none".
func LookupReduction(name string) (Reduction, error) {
	return losses.LookupReduction(name)
}

// WeightingMode selects the class weights of the Wasserstein Dice loss.
type WeightingMode = losses.WeightingMode

// Weighting modes.
const (
	WeightingDefault = losses.WeightingDefault
	WeightingGDL     = losses.WeightingGDL
)

// LookupWeightingMode resolves "default" or "GDL".
func LookupWeightingMode(name string) (WeightingMode, error) {
	return losses.LookupWeightingMode(name)
}

// Compound losses

// DiceCEConfig configures a DiceCELoss.
type DiceCEConfig[B tensor.Backend] = losses.DiceCEConfig[B]

// DefaultDiceCEConfig returns the default DiceCELoss configuration.
func DefaultDiceCEConfig[B tensor.Backend]() DiceCEConfig[B] {
	return losses.DefaultDiceCEConfig[B]()
}

// DiceCELoss computes Dice and cross-entropy losses side by side.
type DiceCELoss[B tensor.Backend] = losses.DiceCELoss[B]

// NewDiceCELoss creates a DiceCELoss.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	cfg := losses.DefaultDiceCEConfig[*autodiff.Backend[*cpu.Backend]]()
//	cfg.ToOneHotY = true
//	cfg.Softmax = true
//	loss, err := losses.NewDiceCELoss(cfg, backend)
func NewDiceCELoss[B tensor.Backend](cfg DiceCEConfig[B], backend B) (*DiceCELoss[B], error) {
	return losses.NewDiceCELoss(cfg, backend)
}

// GWDLCEConfig configures a GWDLCELoss.
type GWDLCEConfig = losses.GWDLCEConfig

// DefaultGWDLCEConfig returns GDL weighting, mean reduction and unit lambdas.
func DefaultGWDLCEConfig() GWDLCEConfig {
	return losses.DefaultGWDLCEConfig()
}

// GWDLCELoss computes Generalized Wasserstein Dice and cross-entropy losses
// side by side.
type GWDLCELoss[B tensor.Backend] = losses.GWDLCELoss[B]

// NewGWDLCELoss creates a GWDLCELoss around a distance matrix.
//
// Example:
//
//	dist, err := distance.Build(backend, distance.QuarterPenalty)
//	loss, err := losses.NewGWDLCELoss(dist, losses.DefaultGWDLCEConfig())
func NewGWDLCELoss[B tensor.Backend](distMatrix *tensor.Tensor[float32, B], cfg GWDLCEConfig) (*GWDLCELoss[B], error) {
	return losses.NewGWDLCELoss(distMatrix, cfg)
}

// Primitives

// Activation transforms the channels-last prediction inside DiceLoss.
type Activation[B tensor.Backend] = losses.Activation[B]

// DiceConfig configures a DiceLoss.
type DiceConfig[B tensor.Backend] = losses.DiceConfig[B]

// DefaultDiceConfig returns the default DiceLoss configuration.
func DefaultDiceConfig[B tensor.Backend]() DiceConfig[B] {
	return losses.DefaultDiceConfig[B]()
}

// DiceLoss computes the soft Dice loss.
type DiceLoss[B tensor.Backend] = losses.DiceLoss[B]

// NewDiceLoss creates a DiceLoss.
func NewDiceLoss[B tensor.Backend](cfg DiceConfig[B], backend B) (*DiceLoss[B], error) {
	return losses.NewDiceLoss(cfg, backend)
}

// CrossEntropyLoss computes weighted cross-entropy for dense classification.
type CrossEntropyLoss[B tensor.Backend] = losses.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a cross-entropy loss with optional class weights.
func NewCrossEntropyLoss[B tensor.Backend](backend B, weight []float32, reduction Reduction) *CrossEntropyLoss[B] {
	return losses.NewCrossEntropyLoss(backend, weight, reduction)
}

// GeneralizedWassersteinDiceLoss is the Dice loss generalized with a class
// distance matrix.
type GeneralizedWassersteinDiceLoss[B tensor.Backend] = losses.GeneralizedWassersteinDiceLoss[B]

// NewGeneralizedWassersteinDiceLoss creates the loss for a square distance matrix.
func NewGeneralizedWassersteinDiceLoss[B tensor.Backend](
	distMatrix *tensor.Tensor[float32, B],
	mode WeightingMode,
	reduction Reduction,
) (*GeneralizedWassersteinDiceLoss[B], error) {
	return losses.NewGeneralizedWassersteinDiceLoss(distMatrix, mode, reduction)
}

// OneHot expands a (B, 1, *S) label map into float32 (B, numClasses, *S).
func OneHot[B tensor.Backend](labels Target, numClasses int, backend B) (*tensor.Tensor[float32, B], error) {
	return losses.OneHot(labels, numClasses, backend)
}

// Errors

// ShapeError reports incompatible input and target shapes.
type ShapeError = losses.ShapeError

// Sentinel errors, for use with errors.Is.
var (
	ErrNegativeWeight         = losses.ErrNegativeWeight
	ErrUnknownReduction       = losses.ErrUnknownReduction
	ErrUnknownWeightingMode   = losses.ErrUnknownWeightingMode
	ErrIncompatibleActivation = losses.ErrIncompatibleActivation
	ErrRankMismatch           = losses.ErrRankMismatch
	ErrShapeMismatch          = losses.ErrShapeMismatch
	ErrLabelOutOfRange        = losses.ErrLabelOutOfRange
	ErrUnsupportedDType       = losses.ErrUnsupportedDType
)
