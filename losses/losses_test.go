// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package losses_test

import (
	"testing"

	"github.com/born-ml/born/autodiff"
	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segloss/distance"
	"github.com/born-ml/segloss/losses"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func TestGWDLCELoss_QuarterPenalty(t *testing.T) {
	backend := autodiff.New(cpu.New())
	dist, err := distance.Build(backend, distance.QuarterPenalty)
	require.NoError(t, err)

	loss, err := losses.NewGWDLCELoss(dist, losses.DefaultGWDLCEConfig())
	require.NoError(t, err)

	classes := dist.Shape()[0]
	logits := make([]float32, classes*2)
	// Voxel 0 predicts class 4, voxel 1 predicts class 30.
	logits[4*2+0] = 10
	logits[30*2+1] = 10
	input, err := tensor.FromSlice(logits, tensor.Shape{1, classes, 2}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int64{2, 3}, tensor.Shape{1, 1, 2}, backend)
	require.NoError(t, err)

	res, err := loss.Forward(input, target)
	require.NoError(t, err)
	assert.Greater(t, res.Region.Data()[0], float32(0))
	assert.Greater(t, res.Class.Data()[0], float32(0))
}

func TestDiceCELoss_NegativeLambda(t *testing.T) {
	cfg := losses.DefaultDiceCEConfig[Backend]()
	cfg.LambdaDice = -0.1
	_, err := losses.NewDiceCELoss(cfg, autodiff.New(cpu.New()))
	assert.ErrorIs(t, err, losses.ErrNegativeWeight)
}
