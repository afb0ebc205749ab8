package entropy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gravity/entropy"
	"github.com/katalvlaran/gravity/matrix"
)

func TestShannon(t *testing.T) {
	uniform, err := matrix.NewFromRows([][]float64{{1, 1}, {1, 1}})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(4), entropy.Shannon(uniform), 1e-12)

	single, _ := matrix.NewFromRows([][]float64{{0, 5}, {0, 0}})
	assert.Zero(t, entropy.Shannon(single))

	zero, _ := matrix.NewDense(3, 3)
	assert.Zero(t, entropy.Shannon(zero))

	// Scale invariant.
	scaled, _ := matrix.NewFromRows([][]float64{{10, 10}, {10, 10}})
	assert.InDelta(t, entropy.Shannon(uniform), entropy.Shannon(scaled), 1e-12)
}

func TestCompare(t *testing.T) {
	m, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	assert.Equal(t, entropy.Shannon(m), entropy.Compare(m, m))
	assert.Equal(t, entropy.Shannon(m), entropy.Func(m))

	// Cross entropy is never below the entropy of the observed matrix.
	obs, _ := matrix.NewFromRows([][]float64{{4, 3}, {2, 1}})
	assert.GreaterOrEqual(t, entropy.Compare(m, obs), entropy.Shannon(obs))

	other, _ := matrix.NewDense(1, 2)
	assert.Zero(t, entropy.Compare(m, other), "shape mismatch")
	assert.Zero(t, entropy.Compare(nil, m))
}
