// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// ExampleFromEdges builds the adjacency of a path and slices a batch block.
func ExampleFromEdges() {
	x, err := matrix.FromEdges([]matrix.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
	if err != nil {
		fmt.Println(err)
		return
	}
	blk, _ := x.Induced([]int{2, 1, 0})
	fmt.Println("nodes:", x.N(), "nnz:", x.NNZ())
	fmt.Print(blk)

	// Output:
	// nodes: 3 nnz: 4
	// [0, 1, 0]
	// [1, 0, 1]
	// [0, 1, 0]
}

// ExampleMulT reconstructs W·Hᵗ.
func ExampleMulT() {
	w, _ := matrix.NewDenseFrom(2, 1, []float64{1, 2})
	h, _ := matrix.NewDenseFrom(2, 1, []float64{3, 4})
	p, _ := matrix.MulT(w, h)
	fmt.Print(p)

	// Output:
	// [3, 4]
	// [6, 8]
}
