// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	var typed *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(typed), matrix.ErrNilMatrix)

	require.NoError(t, matrix.ValidateNotNil(mustDenseFrom(t, 1, 1, 0)))
}

func TestValidateSquare(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateSquare(mustDenseFrom(t, 1, 2, 0, 0)), matrix.ErrNonSquare)
	require.NoError(t, matrix.ValidateSquare(mustDenseFrom(t, 1, 1, 0)))
}

func TestValidateSymmetric(t *testing.T) {
	sym := mustDenseFrom(t, 2, 2, 0, 1, 1, 0)
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	asym := mustDenseFrom(t, 2, 2, 0, 1, 1.5, 0)
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 0.1), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, -0.5)) // |tol| used

	require.ErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(mustDenseFrom(t, 1, 2, 0, 0), 0), matrix.ErrNonSquare)
}

func TestValidateNonNegative(t *testing.T) {
	require.NoError(t, matrix.ValidateNonNegative(mustDenseFrom(t, 1, 2, 0, 3)))
	require.ErrorIs(t, matrix.ValidateNonNegative(mustDenseFrom(t, 1, 2, 0, -3)), matrix.ErrNegativeWeight)
	require.ErrorIs(t, matrix.ValidateNonNegative(nil), matrix.ErrNilMatrix)
}
