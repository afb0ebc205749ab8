package balance_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gravity/balance"
	"github.com/katalvlaran/gravity/dataset"
)

// ExampleBalance balances a two-zone system and prints the marginals.
func ExampleBalance() {
	ds, err := dataset.New(
		[]float64{100, 200},
		[]float64{150, 150},
		[][]float64{{1, 2}, {2, 1}},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := balance.Balance(ds, []float64{-0.1}, balance.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	rows, cols := balance.Marginals(ds)
	fmt.Printf("converged=%v\n", res.Converged)
	fmt.Printf("rows within threshold: %v\n", math.Abs(rows[0]-100) <= 1 && math.Abs(rows[1]-200) <= 1)
	fmt.Printf("cols=[%.0f %.0f]\n", cols[0], cols[1])
	// Output:
	// converged=true
	// rows within threshold: true
	// cols=[150 150]
}
