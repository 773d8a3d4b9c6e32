// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_grid.go — implementation of Grid(rows, cols) constructor.
//
// Canonical model:
//   • 2D orthogonal grid with 4-neighborhood (right & bottom neighbors per cell).
//   • Node id of cell (r,c) is r*cols + c (row-major).
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • For each cell in row-major order emit Right then Bottom if present.
//
// Complexity:
//   • Time: O(rows*cols). Space: O(1) extra.

package builder

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols orthogonal grid.
func Grid(rows, cols int) Constructor {
	return func(s *edgeSink, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}
		s.grow(rows * cols)
		var r, c, id int
		for r = 0; r < rows; r++ {
			for c = 0; c < cols; c++ {
				id = r*cols + c
				if c+1 < cols {
					s.add(id, id+1, cfg.weight())
				}
				if r+1 < rows {
					s.add(id, id+cols, cfg.weight())
				}
			}
		}

		return nil
	}
}
