// SPDX-License-Identifier: MIT

// Package matrix provides the numeric containers used by the factorization
// pipeline: a row-major Dense matrix for factor blocks and batch sub-blocks, and
// an immutable compressed-row Sparse matrix for the graph adjacency.
//
// The matrix package provides:
//
//   - Dense with bounds-checked At/Set (errors, never panics) and a finite-only
//     numeric policy.
//   - Gemm / Mul / MulT kernels delegating to gonum's blas64 on the flat buffers.
//   - Sparse (CSR) with O(log d) lookups, per-row iteration and Induced(idx),
//     which materializes the dense |idx|×|idx| sub-block used as a training batch.
//   - FromEdges, converting an edge list into a symmetric Sparse adjacency
//     (deduplicated, mirrored, unit weights unless WithWeighted is given).
//   - Validators (square, symmetric within eps, non-negative) shared by the
//     constructors.
//
// Adjacency matrices are immutable once built and are safe for concurrent reads
// from any number of goroutines. Dense values are not synchronized.
//
//	x, err := matrix.FromEdges([]matrix.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
//	block, err := x.Induced([]int{0, 1, 2})
package matrix
