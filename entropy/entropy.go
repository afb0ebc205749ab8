package entropy

import (
	"math"

	"github.com/katalvlaran/gravity/matrix"
)

// Shannon returns -Σ p·ln(p) over the cell proportions p = m[i,j] / Σm.
// Cells with non-positive values contribute nothing. An all-zero (or
// non-positive) matrix has entropy 0.
func Shannon(m *matrix.Dense) float64 {
	return Compare(m, m)
}

// Compare returns the cross entropy -Σ q·ln(p) of the calibrated matrix
// (proportions p) against the observed matrix (proportions q). Cells where
// either proportion is zero are skipped. Compare(m, m) == Shannon(m).
// Shapes must match; mismatched shapes yield 0.
func Compare(calibrated, observed *matrix.Dense) float64 {
	if calibrated == nil || observed == nil {
		return 0
	}
	if calibrated.Rows() != observed.Rows() || calibrated.Cols() != observed.Cols() {
		return 0
	}
	pTotal := positiveTotal(calibrated)
	qTotal := positiveTotal(observed)
	if pTotal <= 0 || qTotal <= 0 {
		return 0
	}

	var h float64
	var i, j int
	for i = 0; i < calibrated.Rows(); i++ {
		pr := calibrated.Row(i)
		qr := observed.Row(i)
		for j = range pr {
			if pr[j] <= 0 || qr[j] <= 0 {
				continue
			}
			h -= (qr[j] / qTotal) * math.Log(pr[j]/pTotal)
		}
	}
	return h
}

func positiveTotal(m *matrix.Dense) float64 {
	var s float64
	var i int
	for i = 0; i < m.Rows(); i++ {
		for _, v := range m.Row(i) {
			if v > 0 {
				s += v
			}
		}
	}
	return s
}

// Func adapts Shannon to the model.EntropyFunc signature.
func Func(m *matrix.Dense) float64 { return Shannon(m) }
