// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_planted.go - planted-partition (stochastic block model) constructor.
//
// Canonical model:
//   - k blocks of `size` consecutive ids; node i belongs to block i/size.
//   - Each unordered pair {i,j}, i<j, is an edge with probability pIn when both
//     ends share a block and pOut otherwise.
//
// Contract:
//   - k ≥ 1 and size ≥ 1 (else ErrTooFewVertices).
//   - pIn, pOut ∈ [0,1] (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when either probability is strictly inside (0,1).
//
// Complexity:
//   - Time: O((k·size)²). Space: O(1) extra.
//
// AI-Hints:
//   - pIn ≫ pOut yields well separated communities; PlantedLabels returns the
//     matching ground truth for scoring.

package builder

import "fmt"

const (
	methodPlanted  = "PlantedPartition"
	minPlantedDim  = 1
	methodLabeling = "PlantedLabels"
)

// PlantedPartition returns a Constructor for a k-block planted-partition graph.
func PlantedPartition(k, size int, pIn, pOut float64) Constructor {
	return func(s *edgeSink, cfg builderConfig) error {
		if k < minPlantedDim || size < minPlantedDim {
			return fmt.Errorf("%s: k=%d, size=%d (each must be ≥ %d): %w",
				methodPlanted, k, size, minPlantedDim, ErrTooFewVertices)
		}
		if err := validateProbability(methodPlanted, pIn); err != nil {
			return err
		}
		if err := validateProbability(methodPlanted, pOut); err != nil {
			return err
		}
		if cfg.rng == nil && (needsRand(pIn) || needsRand(pOut)) {
			return fmt.Errorf("%s: rng is required: %w", methodPlanted, ErrNeedRandSource)
		}

		n := k * size
		s.grow(n)
		var (
			i, j int
			p    float64
		)
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				p = pOut
				if i/size == j/size {
					p = pIn
				}
				if cfg.bernoulli(p) {
					s.add(i, j, cfg.weight())
				}
			}
		}

		return nil
	}
}

// PlantedLabels returns the block index of every node of PlantedPartition(k, size, ...).
func PlantedLabels(k, size int) ([]int, error) {
	if k < minPlantedDim || size < minPlantedDim {
		return nil, fmt.Errorf("%s: k=%d, size=%d: %w", methodLabeling, k, size, ErrTooFewVertices)
	}
	labels := make([]int, k*size)
	for i := range labels {
		labels[i] = i / size
	}

	return labels, nil
}
