package distance

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/sbinet/npyio/npy"
	"gonum.org/v1/gonum/mat"
)

//go:embed tables/*.npy
var tables embed.FS

// Embedded tables are decoded once and shared read-only; DefaultTable hands
// out copies.
var (
	quarterPenaltyTable = sync.OnceValues(func() (*mat.Dense, error) { return loadEmbedded(QuarterPenalty) })
	equalTable          = sync.OnceValues(func() (*mat.Dense, error) { return loadEmbedded(Equal) })
)

// DefaultTable returns a copy of the base table shipped for the variant.
// The table covers the real classes only; background is added by Build.
func DefaultTable(v Variant) (*mat.Dense, error) {
	var (
		table *mat.Dense
		err   error
	)
	switch v {
	case QuarterPenalty:
		table, err = quarterPenaltyTable()
	case Equal:
		table, err = equalTable()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownVariant, v)
	}
	if err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(table), nil
}

// LoadTable reads a NumPy .npy file holding a 2D float64 array.
//
// The table is not checked for being square or non-negative; callers that
// pass it to Build are responsible for supplying a compatible table.
func LoadTable(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrTableNotFound, err)
		}
		return nil, &TableError{Source: path, Err: err}
	}
	defer f.Close()

	return ReadTable(f, path)
}

// ReadTable decodes a .npy stream. source names the stream in errors.
func ReadTable(r io.Reader, source string) (*mat.Dense, error) {
	rd, err := npy.NewReader(r)
	if err != nil {
		return nil, &TableError{Source: source, Err: err}
	}

	shape := rd.Header.Descr.Shape
	if len(shape) != 2 || shape[0] <= 0 || shape[1] <= 0 {
		return nil, &TableError{
			Source: source,
			Err:    fmt.Errorf("%w: want a non-empty 2D array, got shape %v", ErrInvalidTable, shape),
		}
	}

	data := make([]float64, shape[0]*shape[1])
	if err := rd.Read(&data); err != nil {
		return nil, &TableError{Source: source, Err: err}
	}

	return mat.NewDense(shape[0], shape[1], data), nil
}

func loadEmbedded(v Variant) (*mat.Dense, error) {
	name := v.fileName()
	raw, err := tables.ReadFile(name)
	if err != nil {
		return nil, &TableError{Source: name, Err: fmt.Errorf("%w: %w", ErrTableNotFound, err)}
	}
	return ReadTable(bytes.NewReader(raw), name)
}
