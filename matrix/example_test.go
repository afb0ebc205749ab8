// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/gravity/matrix"
)

// ExampleNormalizeRowsL1 turns a flow table into row probabilities.
func ExampleNormalizeRowsL1() {
	flow, _ := matrix.NewFromRows([][]float64{
		{30, 10},
		{0, 0},
	})
	prob, sums, _ := matrix.NormalizeRowsL1(flow)
	fmt.Println(sums)
	fmt.Print(prob)
	// Output:
	// [40 0]
	// [0.75, 0.25]
	// [0, 0]
}
