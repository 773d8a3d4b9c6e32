// SPDX-License-Identifier: MIT

// Package matrix - Sparse adjacency (compressed sparse rows, immutable).
//
// Purpose:
//   - Hold an N×N symmetric non-negative weight matrix in O(N + nnz) memory.
//   - Serve concurrent readers (walk samplers, batch slicing, loss evaluation)
//     without locks: nothing is mutated after construction.
//
// Layout:
//   - rowPtr[i]..rowPtr[i+1] delimit row i inside cols/vals.
//   - Column indices are strictly increasing within a row (binary-searchable).
//   - Explicit zeros are dropped at construction.
//
// Complexity quicksheet:
//   - At: O(log d); Row: O(1) (shared slices); Induced(idx): O(Σ deg(idx) + |idx|²).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	ctxNewSparse = "NewSparse"
	ctxFromDense = "SparseFromDense"
	ctxInduced   = "Sparse.Induced"
)

// Sparse is an immutable square matrix in CSR form.
type Sparse struct {
	n      int
	rowPtr []int
	cols   []int
	vals   []float64
	sum    float64 // Σ of all stored entries
}

// NewSparse builds an n×n Sparse from (row, col, value) triplets.
// MAIN DESCRIPTION:
//   - Entry list → validated, deduplicated CSR adjacency.
//
// Implementation:
//   - Stage 1: validate n>0 and every entry (bounds → finite → non-negative).
//   - Stage 2: stable sort by (row, col); for repeated cells the last write wins.
//   - Stage 3: drop zeros, build rowPtr/cols/vals.
//   - Stage 4: verify symmetry within eps.
//
// Errors:
//   - ErrEmptyGraph (n<=0), ErrOutOfRange, ErrNaNInf, ErrNegativeWeight, ErrAsymmetry.
//
// Complexity:
//   - Time O(E log E + nnz log d), Space O(n + E).
func NewSparse(n int, entries []Entry, opts ...Option) (*Sparse, error) {
	o := gatherOptions(opts...)
	if n <= 0 {
		return nil, fmt.Errorf("%s: n=%d: %w", ctxNewSparse, n, ErrEmptyGraph)
	}
	for k, e := range entries {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n {
			return nil, fmt.Errorf("%s: entry %d (%d,%d): %w", ctxNewSparse, k, e.Row, e.Col, ErrOutOfRange)
		}
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return nil, fmt.Errorf("%s: entry %d (%d,%d): %w", ctxNewSparse, k, e.Row, e.Col, ErrNaNInf)
		}
		if e.Value < 0 {
			return nil, fmt.Errorf("%s: entry %d (%d,%d)=%g: %w", ctxNewSparse, k, e.Row, e.Col, e.Value, ErrNegativeWeight)
		}
	}

	// Work on a copy so the caller's slice order is untouched.
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	s := &Sparse{
		n:      n,
		rowPtr: make([]int, n+1),
		cols:   make([]int, 0, len(sorted)),
		vals:   make([]float64, 0, len(sorted)),
	}
	var k int
	for k < len(sorted) {
		// Advance to the last entry of this (row, col) run: last write wins.
		j := k
		for j+1 < len(sorted) && sorted[j+1].Row == sorted[k].Row && sorted[j+1].Col == sorted[k].Col {
			j++
		}
		e := sorted[j]
		if e.Value != 0 {
			s.cols = append(s.cols, e.Col)
			s.vals = append(s.vals, e.Value)
			s.rowPtr[e.Row+1]++
			s.sum += e.Value
		}
		k = j + 1
	}
	for i := 0; i < n; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	if err := s.validateSymmetric(o.eps); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNewSparse, err)
	}

	return s, nil
}

// SparseFromDense converts a square, symmetric, non-negative Matrix.
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNegativeWeight, ErrAsymmetry.
// Complexity: O(n²).
func SparseFromDense(m Matrix, opts ...Option) (*Sparse, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
	}
	n := m.Rows()
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
			}
			if v != 0 {
				entries = append(entries, Entry{Row: i, Col: j, Value: v})
			}
		}
	}

	return NewSparse(n, entries, opts...)
}

// validateSymmetric checks |a_ij - a_ji| <= eps for every stored entry.
// A missing mirror counts as 0.
func (s *Sparse) validateSymmetric(eps float64) error {
	for i := 0; i < s.n; i++ {
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			j := s.cols[p]
			if j == i {
				continue
			}
			if math.Abs(s.vals[p]-s.at(j, i)) > eps {
				return fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// N returns the number of nodes (rows == cols).
func (s *Sparse) N() int { return s.n }

// Rows returns N.
func (s *Sparse) Rows() int { return s.n }

// Cols returns N.
func (s *Sparse) Cols() int { return s.n }

// NNZ returns the number of stored (non-zero) entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// Sum returns the total weight Σ a_ij over all cells (both triangles).
func (s *Sparse) Sum() float64 { return s.sum }

// at is the unchecked lookup used internally.
func (s *Sparse) at(i, j int) float64 {
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	p := lo + sort.SearchInts(s.cols[lo:hi], j)
	if p < hi && s.cols[p] == j {
		return s.vals[p]
	}

	return 0
}

// At returns a_ij (0 when absent) or ErrOutOfRange.
// Complexity: O(log d).
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		return 0, fmt.Errorf("Sparse.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return s.at(i, j), nil
}

// Row returns the column indices and values of row i. The slices alias the
// matrix storage and must not be modified.
// Complexity: O(1).
func (s *Sparse) Row(i int) ([]int, []float64, error) {
	if i < 0 || i >= s.n {
		return nil, nil, fmt.Errorf("Sparse.Row(%d): %w", i, ErrOutOfRange)
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]

	return s.cols[lo:hi], s.vals[lo:hi], nil
}

// Degree returns the weighted degree Σ_j a_ij of row i.
func (s *Sparse) Degree(i int) (float64, error) {
	_, vals, err := s.Row(i)
	if err != nil {
		return 0, err
	}
	var d float64
	for _, v := range vals {
		d += v
	}

	return d, nil
}

// Induced materializes the dense sub-block A[idx, idx] (values copied verbatim).
// MAIN DESCRIPTION:
//   - Rows and columns of the result follow the order of idx.
//
// Implementation:
//   - Stage 1: map node → position; any duplicate in idx switches to the
//     per-cell lookup path.
//   - Stage 2: scan each selected row once, scattering hits into the block.
//
// Errors:
//   - ErrInvalidDimensions for empty idx; ErrOutOfRange for bad indices.
//
// Complexity:
//   - Time O(Σ deg(idx) + |idx|²), Space O(|idx|²).
func (s *Sparse) Induced(idx []int) (*Dense, error) {
	b := len(idx)
	if b == 0 {
		return nil, fmt.Errorf("%s: %w", ctxInduced, ErrInvalidDimensions)
	}
	pos := make(map[int]int, b)
	dup := false
	for k, v := range idx {
		if v < 0 || v >= s.n {
			return nil, fmt.Errorf("%s: index %d: %w", ctxInduced, v, ErrOutOfRange)
		}
		if _, seen := pos[v]; seen {
			dup = true
		}
		pos[v] = k
	}

	out, err := NewDense(b, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxInduced, err)
	}
	if dup {
		for r, i := range idx {
			for c, j := range idx {
				out.data[r*b+c] = s.at(i, j)
			}
		}
		return out, nil
	}
	for r, i := range idx {
		base := r * b
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			if c, ok := pos[s.cols[p]]; ok {
				out.data[base+c] = s.vals[p]
			}
		}
	}

	return out, nil
}

// ToDense expands the whole matrix. Intended for small graphs and tests.
// Complexity: O(n² + nnz).
func (s *Sparse) ToDense() (*Dense, error) {
	out, err := NewDense(s.n, s.n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < s.n; i++ {
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			out.data[i*s.n+s.cols[p]] = s.vals[p]
		}
	}

	return out, nil
}
