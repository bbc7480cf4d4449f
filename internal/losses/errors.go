package losses

import (
	"errors"
	"fmt"

	"github.com/born-ml/born/tensor"
)

// Common errors.
var (
	ErrNegativeWeight         = errors.New("trade-off weight must be no less than 0.0")
	ErrUnknownReduction       = errors.New("unknown reduction")
	ErrUnknownWeightingMode   = errors.New("unknown weighting mode")
	ErrIncompatibleActivation = errors.New("at most one of sigmoid, softmax and other activation may be set")
	ErrRankMismatch           = errors.New("the number of dimensions for input and target should be the same")
	ErrShapeMismatch          = errors.New("shape mismatch")
	ErrLabelOutOfRange        = errors.New("class label out of range")
	ErrUnsupportedDType       = errors.New("unsupported target dtype")
)

// ShapeError reports incompatible input and target shapes.
type ShapeError struct {
	Op     string       // Loss that rejected the shapes
	Input  tensor.Shape // Prediction shape
	Target tensor.Shape // Target shape
	Err    error        // ErrRankMismatch or ErrShapeMismatch
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v, got shape %v and %v", e.Op, e.Err, e.Input, e.Target)
}

// Unwrap returns the underlying sentinel error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}
