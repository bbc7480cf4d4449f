package distance

import (
	"fmt"

	"github.com/born-ml/born/tensor"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/segloss/internal/logging"
)

// Build returns the class distance matrix for the variant on the backend's
// device. Index 0 is the background class: it is at distance 1 from every
// tooth class and at distance 0 from itself.
//
// The result is meant to be built once at setup and shared read-only by all
// loss evaluations on that backend.
func Build[B tensor.Backend](backend B, v Variant) (*tensor.Tensor[float32, B], error) {
	table, err := DefaultTable(v)
	if err != nil {
		return nil, err
	}
	logging.Logger().Info("distance matrix", "variant", v.String(), "mode", v.description())

	return BuildFromTable(backend, table)
}

// BuildFromTable embeds a caller-supplied base table the same way Build does.
func BuildFromTable[B tensor.Backend](backend B, table mat.Matrix) (*tensor.Tensor[float32, B], error) {
	return upload(WithBackground(table), backend)
}

// EqualMatrix returns a (numClasses+1)x(numClasses+1) matrix of ones with a
// zero background-to-background cell. No table file is involved.
func EqualMatrix[B tensor.Backend](backend B, numClasses int) (*tensor.Tensor[float32, B], error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("%w: numClasses must be positive, got %d", ErrInvalidTable, numClasses)
	}
	n := numClasses + 1
	m := mat.NewDense(n, n, ones(n*n))
	m.Set(0, 0, 0)

	return upload(m, backend)
}

// WithBackground prepends one row and one column of ones to table and sets
// the new [0,0] cell to 0.
func WithBackground(table mat.Matrix) *mat.Dense {
	r, c := table.Dims()
	out := mat.NewDense(r+1, c+1, ones((r+1)*(c+1)))
	out.Slice(1, r+1, 1, c+1).(*mat.Dense).Copy(table)
	out.Set(0, 0, 0)
	return out
}

func upload[B tensor.Backend](m *mat.Dense, backend B) (*tensor.Tensor[float32, B], error) {
	r, c := m.Dims()
	data := make([]float32, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, float32(m.At(i, j)))
		}
	}
	return tensor.FromSlice(data, tensor.Shape{r, c}, backend)
}

func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
