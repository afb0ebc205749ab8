// Package entropy provides the default dispersion statistic for flow
// matrices. Calibration treats entropy as a pluggable function
// (model.EntropyFunc); Func is the implementation wired in by default.
//
// Both statistics work on cell proportions p = m[i,j] / Σm over the
// positive cells only, so missing links and empty cells never produce
// log(0). Shannon(m) is the cross entropy of m against itself.
package entropy
