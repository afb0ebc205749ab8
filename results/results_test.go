package results_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gravity/matrix"
	"github.com/katalvlaran/gravity/results"
)

func TestNewArtifact(t *testing.T) {
	flow, err := matrix.NewFromRows([][]float64{{30, 10}, {0, 0}})
	require.NoError(t, err)

	a, err := results.NewArtifact(results.BestFit, flow, 55, 1.2, []string{"A", "B"}, []string{"X", "Y"})
	require.NoError(t, err)
	require.Equal(t, results.BestFit, a.Name)
	require.Equal(t, [][]float64{{30, 10}, {0, 0}}, a.Flow)
	require.Equal(t, [][]float64{{0.75, 0.25}, {0, 0}}, a.Probabilities)
	require.Equal(t, 55.0, a.Distance)
	require.Equal(t, 1.2, a.Entropy)

	// the artifact does not alias the matrix
	require.NoError(t, flow.Set(0, 0, 1))
	require.Equal(t, 30.0, a.Flow[0][0])
}

func TestNewArtifact_Errors(t *testing.T) {
	flow, err := matrix.NewFromRows([][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = results.NewArtifact("x", nil, 0, 0, nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = results.NewArtifact("x", flow, 0, 0, []string{"A", "B"}, []string{"X", "Y"})
	require.ErrorIs(t, err, results.ErrIDMismatch)

	_, err = results.NewArtifact("x", flow, 0, 0, []string{"A"}, []string{"X"})
	require.ErrorIs(t, err, results.ErrIDMismatch)
}
