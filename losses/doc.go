// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package losses provides compound segmentation losses for Born models.
//
// DiceCELoss pairs a soft Dice loss with cross-entropy; GWDLCELoss pairs a
// Generalized Wasserstein Dice loss (see package distance for the class
// distance matrices) with cross-entropy. Both return their terms uncombined
// in a Result, leaving the trade-off weighting to the caller:
//
//	res, err := loss.Forward(logits, labels)
//	total := loss.Total(res) // lambda_dice·Region + lambda_ce·Class
//
// The primitives (DiceLoss, CrossEntropyLoss,
// GeneralizedWassersteinDiceLoss) are exported as well. All of them are
// built from differentiable Born operations and train through any autodiff
// backend.
package losses
