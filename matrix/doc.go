// Package matrix provides the dense row-major float64 buffer used for
// origin-destination tables: distance matrices, flow matrices and the
// row-normalised probability matrices derived from them.
//
// Contents:
//
//   - Dense: r×c storage in one flat slice (offset = i*c + j), safe At/Set
//     accessors returning sentinel errors, deep Clone and in-place CopyFrom.
//   - Reductions: RowSums, ColSums, Total.
//   - NormalizeRowsL1: row-stochastic copy where all-zero rows stay zero.
//   - Equal: exact, bit-level comparison used for snapshot/restore checks.
//
// All loops run in fixed i→j order so results are reproducible bit for bit.
package matrix
