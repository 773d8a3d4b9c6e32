// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_cycle.go — implementation of Cycle(n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Declares ids 0..n-1.
//   • Emits edges in stable order i -> (i+1)%n for i=0..n-1.
//   • Weight policy: cfg.weightFn(cfg.rng) per edge.
//
// Complexity:
//   • Time: O(n). Space: O(1) extra.

package builder

import "fmt"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-vertex simple cycle C_n.
func Cycle(n int) Constructor {
	return func(s *edgeSink, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		s.grow(n)
		// For i==n-1, connect to 0 to close the ring.
		for i := 0; i < n; i++ {
			s.add(i, (i+1)%n, cfg.weight())
		}

		return nil
	}
}
