// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package segloss provides compound segmentation losses for the Born ML
// Framework.
//
// The losses live in package losses and the class distance matrices used by
// the Wasserstein term in package distance. This package only carries the
// module version and the logger hook shared by both.
package segloss

import (
	"log/slog"

	"github.com/born-ml/segloss/internal/logging"
)

// Version is the module version.
const Version = "v0.1.0"

// SetLogger sets the logger used by the losses and distance packages.
// Passing nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}
