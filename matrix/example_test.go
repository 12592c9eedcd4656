package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/tourlab/matrix"
)

// ExampleNewEuclidean builds the distance matrix of a 3-4-5 triangle.
func ExampleNewEuclidean() {
	m, err := matrix.NewEuclidean([]float64{0, 3, 0}, []float64{0, 0, 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i := 0; i < m.Rows(); i++ {
		row, _ := m.Row(i)
		fmt.Println(row)
	}

	_, err = m.At(0, 3)
	fmt.Println(err)
	// Output:
	// [0 3 4]
	// [3 0 5]
	// [4 5 0]
	// Dense.At(0,3): matrix: index out of range
}
