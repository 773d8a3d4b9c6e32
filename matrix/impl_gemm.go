// SPDX-License-Identifier: MIT

// Package matrix - dense products on flat row-major buffers.
//
// Purpose:
//   - One general kernel (Gemm) with explicit transposition flags, delegating to
//     gonum's blas64 which consumes our row-major layout as-is (Stride == Cols).
//   - Allocating helpers (Mul, MulT) for callers that do not keep scratch space.
//
// Determinism:
//   - blas64 uses a fixed accumulation order for a given shape; results are
//     reproducible run to run on the same machine.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

const (
	opGemm = "Gemm"
	opMul  = "Mul"
	opMulT = "MulT"
)

// matrixErrorf tags an error with the operation name, preserving the sentinel.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// general views a Dense as a blas64.General without copying.
func general(m *Dense) blas64.General {
	return blas64.General{Rows: m.r, Cols: m.c, Stride: m.c, Data: m.data}
}

// opShape returns the shape of op(m) for the given transposition flag.
func opShape(m *Dense, trans bool) (int, int) {
	if trans {
		return m.c, m.r
	}

	return m.r, m.c
}

func blasTrans(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}

	return blas.NoTrans
}

// Gemm computes c = alpha·op(a)·op(b) + beta·c in place.
// MAIN DESCRIPTION:
//   - op(x) is x or xᵗ depending on transA / transB.
//
// Implementation:
//   - Stage 1: nil and shape validation (op(a).Cols == op(b).Rows, c matches result).
//   - Stage 2: blas64.Gemm on the flat buffers.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Gemm").
//
// Complexity:
//   - Time O(m·n·k), Space O(1) extra.
//
// Notes:
//   - c must not alias a or b.
func Gemm(transA, transB bool, alpha float64, a, b *Dense, beta float64, c *Dense) error {
	if a == nil || b == nil || c == nil {
		return matrixErrorf(opGemm, ErrNilMatrix)
	}
	ar, ac := opShape(a, transA)
	br, bc := opShape(b, transB)
	if ac != br {
		return matrixErrorf(opGemm, ErrDimensionMismatch)
	}
	if c.r != ar || c.c != bc {
		return matrixErrorf(opGemm, ErrDimensionMismatch)
	}
	blas64.Gemm(blasTrans(transA), blasTrans(transB), alpha, general(a), general(b), beta, general(c))

	return nil
}

// Mul returns a·b as a new Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r·n·c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	out, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err = Gemm(false, false, 1, a, b, 0, out); err != nil {
		return nil, err
	}

	return out, nil
}

// MulT returns a·bᵗ as a new Dense; the shape every reconstruction W·Hᵗ needs.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r·n·c).
func MulT(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMulT, ErrNilMatrix)
	}
	if a.c != b.c {
		return nil, matrixErrorf(opMulT, ErrDimensionMismatch)
	}
	out, err := NewDense(a.r, b.r)
	if err != nil {
		return nil, matrixErrorf(opMulT, err)
	}
	if err = Gemm(false, true, 1, a, b, 0, out); err != nil {
		return nil, err
	}

	return out, nil
}

// FrobeniusSq returns Σ m_ij² (0 for nil).
func FrobeniusSq(m *Dense) float64 {
	if m == nil {
		return 0
	}
	v := blas64.Vector{N: len(m.data), Inc: 1, Data: m.data}

	return blas64.Dot(v, v)
}
