package losses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segloss/internal/parallel"
)

func TestOneHot(t *testing.T) {
	backend := newBackend()
	labels := fromSlice(t, backend, []int64{0, 2, 1, 2}, 1, 1, 2, 2)

	got, err := OneHot(labels, 3, backend)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 2, 2}, []int(got.Shape()))
	assert.Equal(t, []float32{
		1, 0, 0, 0, // class 0
		0, 0, 1, 0, // class 1
		0, 1, 0, 1, // class 2
	}, got.Data())
}

func TestOneHot_Errors(t *testing.T) {
	backend := newBackend()

	_, err := OneHot(fromSlice(t, backend, []int32{0, 3}, 1, 1, 2), 3, backend)
	assert.ErrorIs(t, err, ErrLabelOutOfRange)

	_, err = OneHot(fromSlice(t, backend, []int32{0, 1, 1, 0}, 1, 2, 2), 2, backend)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestArgmaxChannels(t *testing.T) {
	// (B=1, C=3, S=2): voxel 0 favours class 2, voxel 1 class 0 (tie with 1).
	data := []float32{
		0.1, 0.5,
		0.2, 0.5,
		0.7, 0.0,
	}
	assert.Equal(t, []int32{2, 0}, argmaxChannels(data, 1, 3, 2))
}

func TestHostPreparation_SplitMatchesInline(t *testing.T) {
	const batch, channels, spatial = 3, 4, 50
	labels := make([]int32, batch*spatial)
	for i := range labels {
		labels[i] = int32((i * 5) % channels)
	}
	logits := rampLogits(batch * channels * spatial)

	saved := hostWork
	defer func() { hostWork = saved }()

	hostWork = parallel.Config{Workers: 1}
	wantHot := oneHot(labels, batch, channels, spatial)
	wantLast := hostChannelsLast(logits, batch, channels, spatial)
	wantArgmax := argmaxChannels(wantHot, batch, channels, spatial)

	hostWork = parallel.Config{Workers: 4, MinChunk: 7}
	assert.Equal(t, wantHot, oneHot(labels, batch, channels, spatial))
	assert.Equal(t, wantLast, hostChannelsLast(logits, batch, channels, spatial))
	assert.Equal(t, wantArgmax, argmaxChannels(wantHot, batch, channels, spatial))
	assert.Equal(t, labels, wantArgmax)
}

func TestHostChannelsLast(t *testing.T) {
	// (B=1, C=2, S=3) -> (3, 2)
	got := hostChannelsLast([]float32{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, got)
}
