// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package distance

import (
	"io"

	"github.com/born-ml/born/tensor"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/segloss/internal/distance"
)

// Variant names one of the embedded distance tables.
type Variant = distance.Variant

// Variants. Equal keeps 1 on the tooth-class diagonal; QuarterPenalty has
// zero self-distance for every class.
const (
	QuarterPenalty = distance.QuarterPenalty
	Equal          = distance.Equal
)

// ParseVariant resolves a variant name such as "quarter-penalty" or "equal".
func ParseVariant(s string) (Variant, error) {
	return distance.ParseVariant(s)
}

// Build returns the distance matrix for a variant: the embedded table with a
// leading background row and column of ones and a zero at [0][0].
//
// Example:
//
//	backend := cpu.New()
//	m, err := distance.Build(backend, distance.QuarterPenalty) // 33×33
func Build[B tensor.Backend](backend B, v Variant) (*tensor.Tensor[float32, B], error) {
	return distance.Build(backend, v)
}

// BuildFromTable is Build for a caller-supplied table.
func BuildFromTable[B tensor.Backend](backend B, table mat.Matrix) (*tensor.Tensor[float32, B], error) {
	return distance.BuildFromTable(backend, table)
}

// EqualMatrix returns an all-ones (numClasses+1)-square matrix with a zero
// at [0][0].
func EqualMatrix[B tensor.Backend](backend B, numClasses int) (*tensor.Tensor[float32, B], error) {
	return distance.EqualMatrix(backend, numClasses)
}

// DefaultTable returns a copy of the embedded table for a variant.
func DefaultTable(v Variant) (*mat.Dense, error) {
	return distance.DefaultTable(v)
}

// LoadTable reads a 2D table from a NumPy .npy file.
func LoadTable(path string) (*mat.Dense, error) {
	return distance.LoadTable(path)
}

// ReadTable reads a 2D table in .npy format from r.
func ReadTable(r io.Reader, source string) (*mat.Dense, error) {
	return distance.ReadTable(r, source)
}

// WithBackground prepends the background row and column to a table.
func WithBackground(table mat.Matrix) *mat.Dense {
	return distance.WithBackground(table)
}

// TableError reports a table that could not be loaded.
type TableError = distance.TableError

// Sentinel errors, for use with errors.Is.
var (
	ErrUnknownVariant = distance.ErrUnknownVariant
	ErrTableNotFound  = distance.ErrTableNotFound
	ErrInvalidTable   = distance.ErrInvalidTable
)
