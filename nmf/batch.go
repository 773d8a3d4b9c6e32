// SPDX-License-Identifier: MIT

package nmf

import "github.com/katalvlaran/asgdnmf/matrix"

// Batch is one training example: B distinct node ids and the induced B×B
// adjacency block, rows and columns in Nodes order. Immutable once produced.
type Batch struct {
	Nodes []int
	Block *matrix.Dense
}

// Size returns the number of nodes in the batch.
func (b Batch) Size() int { return len(b.Nodes) }
