// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Marginal reductions (row/column sums, total) over Dense buffers.
//   - Row-stochastic normalisation for flow → probability export.
//   - Exact equality for snapshot/restore verification.
//
// Determinism:
//   - Fixed i→j traversal in every loop; sums accumulate in the same order
//     on every call, so repeated reductions are bit-identical.

package matrix

import "math"

const (
	opRowSums         = "RowSums"
	opColSums         = "ColSums"
	opTotal           = "Total"
	opNormalizeRowsL1 = "NormalizeRowsL1"
	opEqual           = "Equal"
)

// RowSums returns r where r[i] = Σ_j m[i,j].
// Complexity: O(r*c).
func RowSums(m *Dense) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opRowSums, ErrNilMatrix)
	}
	out := make([]float64, m.r)
	var i, j int
	var s float64
	for i = 0; i < m.r; i++ {
		s = 0.0
		base := i * m.c
		for j = 0; j < m.c; j++ {
			s += m.data[base+j]
		}
		out[i] = s
	}

	return out, nil
}

// ColSums returns c where c[j] = Σ_i m[i,j].
// Complexity: O(r*c).
func ColSums(m *Dense) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opColSums, ErrNilMatrix)
	}
	out := make([]float64, m.c)
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			out[j] += m.data[base+j]
		}
	}

	return out, nil
}

// Total returns Σ_ij m[i,j].
func Total(m *Dense) (float64, error) {
	if m == nil {
		return 0, matrixErrorf(opTotal, ErrNilMatrix)
	}
	var s float64
	for _, v := range m.data {
		s += v
	}

	return s, nil
}

// NormalizeRowsL1 returns a copy of m where each row is divided by its sum,
// together with the original row sums.
// Implementation:
//   - Stage 1: validate m.
//   - Stage 2: compute row sums in fixed order.
//   - Stage 3: rows with sum > 0 are divided by their sum; other rows stay all zero.
//
// Behavior highlights:
//   - Rows whose sum is not strictly positive produce zeros, never NaN.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NormalizeRowsL1(m *Dense) (*Dense, []float64, error) {
	if m == nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, ErrNilMatrix)
	}
	sums, _ := RowSums(m)
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}

	var i, j int
	for i = 0; i < m.r; i++ {
		if sums[i] <= 0 {
			continue
		}
		base := i * m.c
		for j = 0; j < m.c; j++ {
			out.data[base+j] = m.data[base+j] / sums[i]
		}
	}

	return out, sums, nil
}

// Equal reports whether a and b have the same shape and bit-identical
// elements. NaN compares equal to NaN with the same bit pattern.
func Equal(a, b *Dense) (bool, error) {
	if a == nil || b == nil {
		return false, matrixErrorf(opEqual, ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return false, nil
	}
	for k := range a.data {
		if math.Float64bits(a.data[k]) != math.Float64bits(b.data[k]) {
			return false, nil
		}
	}

	return true, nil
}
