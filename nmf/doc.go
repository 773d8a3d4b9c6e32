// SPDX-License-Identifier: MIT

// Package nmf implements asynchronous, sampling-based non-negative matrix
// factorization of a symmetric sparse graph adjacency X ≈ |W|·|H|ᵗ.
//
// A Fit runs in two sequential phases:
//
//  1. Sample. A pool of sampler goroutines walks the graph through a
//     walk.Sampler, collecting batches of B distinct nodes together with the
//     induced B×B block of X, until the sampler reports full coverage.
//  2. Train. The sampled batches are replayed into a shuffle.Buffer until
//     maxIter + M feed operations have happened (M = trainer workers), then a
//     pool of trainers draws batches in random order and applies Hogwild
//     updates to the shared factors until the step counter passes maxIter.
//
// The factors are stored signed; readers and the loss see |W| and |H|.
// Per batch:
//
//	R  = |W_s|·|H_s|ᵗ − X_s
//	dW = R·|H_s|  ⊙ sign(W_s)
//	dH = Rᵗ·|W_s| ⊙ sign(H_s)
//	W_s -= lr·dW,  H_s -= lr·dH
//
// Trainers never lock rows. Each scalar update is an atomic CAS add, so
// concurrent batches may read stale rows but never torn values.
//
// Usage:
//
//	m, err := nmf.New(8, nmf.WithBatchSize(64), nmf.WithSeed(1))
//	res, err := m.Fit(ctx, x)
//	labels := res.Factors.CommunityLabels()
//
// Options record invalid values and New reports them as ErrOptionViolation.
// Phases are logged with log/slog and traced/metered through the
// OpenTelemetry API (global providers unless WithTracerProvider /
// WithMeterProvider are given).
package nmf
