// SPDX-License-Identifier: MIT

package walk

import "github.com/katalvlaran/asgdnmf/matrix"

// Components returns the number of connected components of x (isolated
// nodes count as their own component) and the component id of every node,
// numbered in order of the smallest node they contain.
// Errors: ErrNilAdjacency.
// Complexity: O(N + nnz).
func Components(x *matrix.Sparse) (int, []int, error) {
	if x == nil {
		return 0, nil, ErrNilAdjacency
	}
	n := x.N()
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	queue := make([]int, 0, n)

	var count int
	for root := 0; root < n; root++ {
		if comp[root] >= 0 {
			continue
		}
		comp[root] = count
		queue = append(queue[:0], root)
		for head := 0; head < len(queue); head++ {
			cols, _, _ := x.Row(queue[head]) // in range by construction
			for _, j := range cols {
				if comp[j] < 0 {
					comp[j] = count
					queue = append(queue, j)
				}
			}
		}
		count++
	}

	return count, comp, nil
}
