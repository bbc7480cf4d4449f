package distance

import (
	"fmt"
	"strings"
)

// Variant selects which base table the distance matrix is built from.
type Variant int

const (
	// QuarterPenalty uses non-uniform distances: teeth in the same quadrant
	// are closer to each other than teeth in different quadrants.
	QuarterPenalty Variant = iota
	// Equal uses unit distance between every pair of tooth classes. The
	// diagonal is 1 as well, so unlike QuarterPenalty a tooth class is not at
	// zero distance from itself; only the background cell [0][0] is 0.
	Equal
)

// String returns the variant name as accepted by ParseVariant.
func (v Variant) String() string {
	switch v {
	case QuarterPenalty:
		return "quarter-penalty"
	case Equal:
		return "equal"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant converts a variant name into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quarter-penalty", "quarter_penalty", "quarter":
		return QuarterPenalty, nil
	case "equal":
		return Equal, nil
	default:
		return 0, fmt.Errorf("%w: %q (want quarter-penalty or equal)", ErrUnknownVariant, s)
	}
}

// Set implements pflag.Value so a Variant can be bound to a CLI flag.
func (v *Variant) Set(s string) error {
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Variant) Type() string {
	return "variant"
}

// fileName is the embedded table backing the variant.
func (v Variant) fileName() string {
	switch v {
	case Equal:
		return "tables/equal.npy"
	default:
		return "tables/quarter_penalty.npy"
	}
}

// description is logged when a matrix is built for the variant.
func (v Variant) description() string {
	if v == Equal {
		return "equal quadrants, no intra-quadrant penalty"
	}
	return "intra-quadrant penalty"
}
