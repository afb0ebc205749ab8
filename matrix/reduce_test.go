// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gravity/matrix"
)

func TestRowColSums(t *testing.T) {
	t.Parallel()

	m, _ := matrix.NewFromRows([][]float64{{1, 2, 3}, {10, 20, 30}})

	rows, err := matrix.RowSums(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 60}, rows)

	cols, err := matrix.ColSums(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, cols)

	total, err := matrix.Total(m)
	require.NoError(t, err)
	assert.Equal(t, 66.0, total)

	_, err = matrix.RowSums(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.ColSums(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestNormalizeRowsL1_ZeroRowStaysZero(t *testing.T) {
	t.Parallel()

	m, _ := matrix.NewFromRows([][]float64{
		{0, 0, 0},
		{1, 1, 2},
	})
	p, sums, err := matrix.NormalizeRowsL1(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4}, sums)
	assert.Equal(t, [][]float64{{0, 0, 0}, {0.25, 0.25, 0.5}}, p.ToRows())

	// Input untouched.
	v, _ := m.At(1, 2)
	assert.Equal(t, 2.0, v)
}

func TestEqual_Bitwise(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewFromRows([][]float64{{1, 2}})
	b, _ := matrix.NewFromRows([][]float64{{1, 2}})
	eq, err := matrix.Equal(a, b)
	require.NoError(t, err)
	assert.True(t, eq)

	require.NoError(t, b.Set(0, 1, math.Nextafter(2, 3)))
	eq, _ = matrix.Equal(a, b)
	assert.False(t, eq, "one ulp apart is not equal")

	c, _ := matrix.NewDense(2, 1)
	eq, _ = matrix.Equal(a, c)
	assert.False(t, eq, "different shapes")
}
