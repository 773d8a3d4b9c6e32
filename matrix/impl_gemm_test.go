// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/stretchr/testify/require"
)

// mustDenseFrom builds a Dense or fails the test.
func mustDenseFrom(tb testing.TB, r, c int, data ...float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(tb, err)

	return m
}

func TestMul(t *testing.T) {
	a := mustDenseFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := mustDenseFrom(t, 3, 2, 7, 8, 9, 10, 11, 12)

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.True(t, got.Equal(mustDenseFrom(t, 2, 2, 58, 64, 139, 154)), got.String())

	_, err = matrix.Mul(a, a) // 2×3 · 2×3
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMulT(t *testing.T) {
	w := mustDenseFrom(t, 2, 2, 1, 2, 3, 4)
	h := mustDenseFrom(t, 3, 2, 1, 0, 0, 1, 1, 1)

	got, err := matrix.MulT(w, h) // (2×2)·(3×2)ᵗ = 2×3
	require.NoError(t, err)
	require.True(t, got.Equal(mustDenseFrom(t, 2, 3, 1, 2, 3, 3, 4, 7)), got.String())

	_, err = matrix.MulT(w, mustDenseFrom(t, 1, 3, 1, 1, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestGemmTransposeAccumulate checks c = alpha·aᵗ·b + beta·c.
func TestGemmTransposeAccumulate(t *testing.T) {
	a := mustDenseFrom(t, 2, 2, 1, 2, 3, 4) // aᵗ = [1 3; 2 4]
	b := mustDenseFrom(t, 2, 2, 1, 0, 0, 1) // identity
	c := mustDenseFrom(t, 2, 2, 1, 1, 1, 1)

	require.NoError(t, matrix.Gemm(true, false, 2, a, b, 1, c))
	require.True(t, c.Equal(mustDenseFrom(t, 2, 2, 3, 7, 5, 9)), c.String())

	bad := mustDenseFrom(t, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	require.ErrorIs(t, matrix.Gemm(false, false, 1, a, b, 0, bad), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.Gemm(false, false, 1, a, nil, 0, c), matrix.ErrNilMatrix)
}

func TestFrobeniusSq(t *testing.T) {
	require.Equal(t, 30.0, matrix.FrobeniusSq(mustDenseFrom(t, 2, 2, 1, -2, 3, 4)))
	require.Zero(t, matrix.FrobeniusSq(nil))
}
