// SPDX-License-Identifier: MIT

package nmf_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/asgdnmf/builder"
	"github.com/katalvlaran/asgdnmf/nmf"
	"github.com/stretchr/testify/require"
)

func BenchmarkGradient(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	w := randSigned(b, rng, 32, 8)
	h := randSigned(b, rng, 32, 8)
	x := randSigned(b, rng, 32, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := nmf.Gradient(w, h, x); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFit(b *testing.B) {
	x, err := builder.BuildSparse([]builder.BuilderOption{builder.WithSeed(1)},
		builder.PlantedPartition(4, 50, 0.2, 0.01))
	require.NoError(b, err)
	m, err := nmf.New(4, nmf.WithSeed(1), nmf.WithLogger(quietLogger()))
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Fit(context.Background(), x); err != nil {
			b.Fatal(err)
		}
	}
}
