// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and sparse containers.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Edge is one entry of an input edge list. Node ids are dense non-negative
// integers; the adjacency is sized to the maximum id + 1.
// Weight is read only when FromEdges runs WithWeighted.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Entry is an explicit (row, col, value) triplet for NewSparse.
type Entry struct {
	Row   int
	Col   int
	Value float64
}
