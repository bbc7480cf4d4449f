package losses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupReduction(t *testing.T) {
	for name, want := range map[string]Reduction{
		"mean": ReductionMean,
		"sum":  ReductionSum,
		"none": ReductionNone,
		"MEAN": ReductionMean,
	} {
		got, err := LookupReduction(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := LookupReduction("batchmean")
	assert.ErrorIs(t, err, ErrUnknownReduction)
}

func TestLookupReduction_Restricted(t *testing.T) {
	_, err := lookupReduction("none", ReductionMean, ReductionSum)
	assert.ErrorIs(t, err, ErrUnknownReduction)
	assert.Contains(t, err.Error(), "[mean sum]")
}

func TestLookupWeightingMode(t *testing.T) {
	mode, err := LookupWeightingMode("gdl")
	require.NoError(t, err)
	assert.Equal(t, WeightingGDL, mode)

	mode, err = LookupWeightingMode("default")
	require.NoError(t, err)
	assert.Equal(t, WeightingDefault, mode)

	_, err = LookupWeightingMode("GDL2")
	assert.ErrorIs(t, err, ErrUnknownWeightingMode)
}
