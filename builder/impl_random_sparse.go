// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p) constructor.
//
// Canonical model:
//   - Erdős–Rényi generator: include each unordered pair {i,j}, i<j,
//     independently with probability p.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when 0 < p < 1 (else ErrNeedRandSource).
//
// Complexity:
//   - Time: O(n²) Bernoulli trials. Space: O(1) extra.
//
// Determinism:
//   - Stable trial order: for each i asc, j asc (j>i); one rng draw per trial,
//     then one weight draw per accepted pair.

package builder

import (
	"fmt"
	"math"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// validateProbability enforces p ∈ [probMin, probMax].
func validateProbability(method string, p float64) error {
	if p < probMin || p > probMax || math.IsNaN(p) {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", method, p, probMin, probMax, ErrInvalidProbability)
	}

	return nil
}

// needsRand reports whether p requires actual sampling.
func needsRand(p float64) bool { return p > probMin && p < probMax }

// bernoulli draws a trial; p∈{0,1} never touches the rng.
func (c builderConfig) bernoulli(p float64) bool {
	switch p {
	case probMin:
		return false
	case probMax:
		return true
	}

	return c.rng.Float64() < p
}

// RandomSparse returns a Constructor that samples an Erdős–Rényi graph
// over n vertices with independent edge probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(s *edgeSink, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if err := validateProbability(methodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil && needsRand(p) {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		s.grow(n)
		var i, j int
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if cfg.bernoulli(p) {
					s.add(i, j, cfg.weight())
				}
			}
		}

		return nil
	}
}
