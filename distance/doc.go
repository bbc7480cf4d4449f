// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package distance builds class distance matrices for the Generalized
// Wasserstein Dice loss.
//
// Two tables ship with the package: QuarterPenalty (32 FDI tooth classes,
// cheaper mistakes within a jaw quadrant) and Equal (every mistake costs the
// same). Build prepends the background class, so the matrix is 33×33.
// Custom tables can be read from .npy files with LoadTable.
package distance
