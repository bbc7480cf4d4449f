package losses

import (
	"fmt"
	"strings"
)

// Reduction is the policy for aggregating per-element loss values.
type Reduction int

const (
	// ReductionMean divides the summed loss by the number of elements
	// (or by the summed class weights for weighted class-index cross-entropy).
	ReductionMean Reduction = iota
	// ReductionSum sums the loss.
	ReductionSum
	// ReductionNone keeps the unreduced loss.
	ReductionNone
)

// String returns the reduction name.
func (r Reduction) String() string {
	switch r {
	case ReductionMean:
		return "mean"
	case ReductionSum:
		return "sum"
	case ReductionNone:
		return "none"
	default:
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
}

func (r Reduction) valid() bool {
	return r >= ReductionMean && r <= ReductionNone
}

// LookupReduction resolves a reduction name.
func LookupReduction(name string) (Reduction, error) {
	return lookupReduction(name, ReductionMean, ReductionSum, ReductionNone)
}

// lookupReduction resolves name among the allowed reductions only.
func lookupReduction(name string, allowed ...Reduction) (Reduction, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	names := make([]string, len(allowed))
	for i, r := range allowed {
		if r.String() == key {
			return r, nil
		}
		names[i] = r.String()
	}
	return 0, fmt.Errorf("%w: %q is not one of %v", ErrUnknownReduction, name, names)
}
