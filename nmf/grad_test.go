// SPDX-License-Identifier: MIT

package nmf_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/nmf"
	"github.com/stretchr/testify/require"
)

// randSigned fills an r×c matrix with values of magnitude in [0.2, 1.2) and
// random sign, keeping every entry away from the |x| kink at 0.
func randSigned(tb testing.TB, rng *rand.Rand, r, c int) *matrix.Dense {
	tb.Helper()
	data := make([]float64, r*c)
	for i := range data {
		v := 0.2 + rng.Float64()
		if rng.Intn(2) == 0 {
			v = -v
		}
		data[i] = v
	}
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(tb, err)

	return m
}

func lossAt(tb testing.TB, w, h, x *matrix.Dense) float64 {
	tb.Helper()
	loss, _, _, err := nmf.Gradient(w, h, x)
	require.NoError(tb, err)

	return loss
}

// TestGradientFiniteDifference compares the analytic gradient with central
// differences of the batch loss.
func TestGradientFiniteDifference(t *testing.T) {
	const (
		b, k = 5, 3
		eps  = 1e-6
		tol  = 1e-5
	)
	rng := rand.New(rand.NewSource(11))
	w := randSigned(t, rng, b, k)
	h := randSigned(t, rng, b, k)
	xs, err := matrix.NewDense(b, b)
	require.NoError(t, err)
	for i := 0; i < b; i++ {
		for j := i + 1; j < b; j++ {
			if rng.Intn(2) == 0 {
				require.NoError(t, xs.Set(i, j, 1))
				require.NoError(t, xs.Set(j, i, 1))
			}
		}
	}

	_, dW, dH, err := nmf.Gradient(w, h, xs)
	require.NoError(t, err)

	check := func(name string, target, grad *matrix.Dense) {
		data := target.RawData()
		for p := range data {
			orig := data[p]
			data[p] = orig + eps
			up := lossAt(t, w, h, xs)
			data[p] = orig - eps
			down := lossAt(t, w, h, xs)
			data[p] = orig
			numeric := (up - down) / (2 * eps)
			require.InDelta(t, numeric, grad.RawData()[p], tol, "%s[%d]", name, p)
		}
	}
	check("dW", w, dW)
	check("dH", h, dH)
}

func TestGradientLoss(t *testing.T) {
	// |W|·|H|ᵗ == X exactly, so the loss and both gradients vanish.
	w, err := matrix.NewDenseFrom(2, 1, []float64{1, -2})
	require.NoError(t, err)
	h, err := matrix.NewDenseFrom(2, 1, []float64{-1, 1})
	require.NoError(t, err)
	x, err := matrix.NewDenseFrom(2, 2, []float64{1, 1, 2, 2})
	require.NoError(t, err)

	loss, dW, dH, err := nmf.Gradient(w, h, x)
	require.NoError(t, err)
	require.Zero(t, loss)
	require.Zero(t, matrix.FrobeniusSq(dW))
	require.Zero(t, matrix.FrobeniusSq(dH))

	// Zero factors: loss is 0.5·||X||².
	z, err := matrix.NewDense(2, 1)
	require.NoError(t, err)
	loss, _, _, err = nmf.Gradient(z, z, x)
	require.NoError(t, err)
	require.InDelta(t, 5.0, loss, 1e-12)
	require.False(t, math.IsNaN(loss))
}

func TestGradientErrors(t *testing.T) {
	a, _ := matrix.NewDense(3, 2)
	b, _ := matrix.NewDense(2, 2)
	x3, _ := matrix.NewDense(3, 3)
	x2, _ := matrix.NewDense(2, 2)

	_, _, _, err := nmf.Gradient(nil, a, x3)
	require.ErrorIs(t, err, nmf.ErrNilMatrix)
	_, _, _, err = nmf.Gradient(a, b, x3)
	require.ErrorIs(t, err, nmf.ErrShapeMismatch)
	_, _, _, err = nmf.Gradient(a, a, x2)
	require.ErrorIs(t, err, nmf.ErrShapeMismatch)
}
