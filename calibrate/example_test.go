package calibrate_test

import (
	"fmt"

	"github.com/katalvlaran/gravity/calibrate"
)

func ExampleFitness() {
	fmt.Printf("%.1f\n", calibrate.Fitness(90, 2, 100))
	fmt.Printf("%.1f\n", calibrate.Fitness(250, 2, 100))
	fmt.Printf("%.1f\n", calibrate.Fitness(200, 2, 100))
	// Output:
	// 1.8
	// -50.0
	// 0.0
}
