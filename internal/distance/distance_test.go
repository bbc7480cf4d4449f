package distance

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/born/backend/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// npyBytes encodes a little-endian float64 array in NumPy v1.0 format.
func npyBytes(shape []int, data []float64) []byte {
	dims := ""
	for i, d := range shape {
		if i > 0 {
			dims += ", "
		}
		dims += fmt.Sprint(d)
	}
	if len(shape) == 1 {
		dims += ","
	}
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%s), }", dims)
	for (10+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	_ = binary.Write(&buf, binary.LittleEndian, data)
	return buf.Bytes()
}

func TestBuild_BackgroundRowAndColumn(t *testing.T) {
	backend := cpu.New()

	for _, v := range []Variant{QuarterPenalty, Equal} {
		t.Run(v.String(), func(t *testing.T) {
			m, err := Build(backend, v)
			require.NoError(t, err)
			require.Equal(t, []int{33, 33}, []int(m.Shape()))

			assert.Equal(t, float32(0), m.At(0, 0))
			for k := 1; k < 33; k++ {
				assert.Equal(t, float32(1), m.At(0, k), "row 0, col %d", k)
				assert.Equal(t, float32(1), m.At(k, 0), "row %d, col 0", k)
			}
		})
	}
}

func TestBuild_EqualVariant(t *testing.T) {
	m, err := Build(cpu.New(), Equal)
	require.NoError(t, err)

	for i := 1; i < 33; i++ {
		for j := 1; j < 33; j++ {
			require.Equal(t, float32(1), m.At(i, j), "cell (%d, %d)", i, j)
		}
	}
	// Tooth classes keep unit self-distance; only background is at zero.
	assert.Equal(t, float32(1), m.At(5, 5))
	assert.Equal(t, float32(0), m.At(0, 0))
}

func TestBuild_QuarterPenaltyVariant(t *testing.T) {
	m, err := Build(cpu.New(), QuarterPenalty)
	require.NoError(t, err)

	// Classes 1-8 form the first quadrant.
	assert.Equal(t, float32(0), m.At(3, 3))
	assert.Equal(t, float32(0.5), m.At(1, 8))
	assert.Equal(t, float32(1), m.At(1, 9))
	assert.Equal(t, float32(1), m.At(32, 1))
	for k := 0; k < 33; k++ {
		assert.Equal(t, float32(0), m.At(k, k), "diagonal %d", k)
	}
}

func TestDefaultTable_ReturnsCopy(t *testing.T) {
	a, err := DefaultTable(QuarterPenalty)
	require.NoError(t, err)
	a.Set(0, 1, 42)

	b, err := DefaultTable(QuarterPenalty)
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.At(0, 1))
}

func TestWithBackground(t *testing.T) {
	table := mat.NewDense(2, 2, []float64{0, 3, 4, 0})
	got := WithBackground(table)

	want := mat.NewDense(3, 3, []float64{
		0, 1, 1,
		1, 0, 3,
		1, 4, 0,
	})
	assert.True(t, mat.Equal(want, got), "got %v", mat.Formatted(got))
	assert.Equal(t, 3.0, table.At(0, 1), "input must not be modified")
}

func TestBuildFromTable(t *testing.T) {
	table := mat.NewDense(2, 2, []float64{0, 2, 2, 0})
	m, err := BuildFromTable(cpu.New(), table)
	require.NoError(t, err)

	assert.Equal(t, []float32{0, 1, 1, 1, 0, 2, 1, 2, 0}, m.Data())
}

func TestEqualMatrix(t *testing.T) {
	m, err := EqualMatrix(cpu.New(), 32)
	require.NoError(t, err)
	require.Equal(t, []int{33, 33}, []int(m.Shape()))

	data := m.Data()
	assert.Equal(t, float32(0), data[0])
	for i := 1; i < len(data); i++ {
		require.Equal(t, float32(1), data[i])
	}

	_, err = EqualMatrix(cpu.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.npy")
	require.NoError(t, os.WriteFile(path, npyBytes([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6}), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)

	r, c := table.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, table.At(1, 2))
}

func TestLoadTable_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.npy")

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var tableErr *TableError
	require.True(t, errors.As(err, &tableErr))
	assert.Equal(t, path, tableErr.Source)
}

func TestReadTable_RejectsNon2D(t *testing.T) {
	_, err := ReadTable(bytes.NewReader(npyBytes([]int{4}, []float64{1, 2, 3, 4})), "vector")
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"quarter-penalty", QuarterPenalty},
		{"Quarter_Penalty", QuarterPenalty},
		{"equal", Equal},
		{" EQUAL ", Equal},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseVariant("manhattan")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestVariant_Flag(t *testing.T) {
	var v Variant
	require.NoError(t, v.Set("equal"))
	assert.Equal(t, Equal, v)
	assert.Equal(t, "variant", v.Type())
	assert.Error(t, v.Set("nope"))
}
