// SPDX-License-Identifier: MIT

// Package matrix - edge list → adjacency conversion.
//
// Rules (defaults):
//   - N = max node id + 1; ids must be ≥ 0.
//   - Unweighted: every edge weighs DefaultEdgeWeight, duplicates collapse.
//   - Each (u,v) is mirrored into (v,u) unless WithDirectedInput.
//   - Weighted: Edge.Weight is used; a repeated pair keeps the last weight.

package matrix

import "fmt"

const ctxFromEdges = "FromEdges"

// FromEdges builds the symmetric sparse adjacency described by edges.
// MAIN DESCRIPTION:
//   - The entry point for edge-list input of a factorization run.
//
// Implementation:
//   - Stage 1: reject an empty list and negative ids; size N from the max id.
//   - Stage 2: emit one Entry per edge (plus its mirror) in list order, so that
//     NewSparse's last-write-wins rule applies to repeated pairs.
//   - Stage 3: NewSparse validates weights and symmetry.
//
// Errors:
//   - ErrEmptyGraph, ErrOutOfRange (negative id), ErrNaNInf, ErrNegativeWeight,
//     ErrAsymmetry (only reachable with WithDirectedInput).
//
// Complexity:
//   - Time O(E log E), Space O(N + E).
//
// AI-Hints:
//   - Self-loops are kept as diagonal entries (not doubled).
//   - Use WithDirectedInput when the list already contains both directions
//     with possibly different weights you want checked.
func FromEdges(edges []Edge, opts ...Option) (*Sparse, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromEdges, ErrEmptyGraph)
	}
	o := gatherOptions(opts...)

	maxID := -1
	for k, e := range edges {
		if e.From < 0 || e.To < 0 {
			return nil, fmt.Errorf("%s: edge %d (%d,%d): %w", ctxFromEdges, k, e.From, e.To, ErrOutOfRange)
		}
		if e.From > maxID {
			maxID = e.From
		}
		if e.To > maxID {
			maxID = e.To
		}
	}

	capHint := len(edges)
	if !o.directedInput {
		capHint *= 2
	}
	entries := make([]Entry, 0, capHint)
	var w float64
	for _, e := range edges {
		w = DefaultEdgeWeight
		if o.weighted {
			w = e.Weight
		}
		entries = append(entries, Entry{Row: e.From, Col: e.To, Value: w})
		if !o.directedInput && e.From != e.To {
			entries = append(entries, Entry{Row: e.To, Col: e.From, Value: w})
		}
	}

	s, err := NewSparse(maxID+1, entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromEdges, err)
	}

	return s, nil
}

// ToEdges lists the upper triangle (i ≤ j) of s as weighted edges, row-major.
// FromEdges(ToEdges(s), WithWeighted()) reproduces s whenever node N-1 has
// at least one edge.
// Complexity: O(nnz).
func (s *Sparse) ToEdges() []Edge {
	out := make([]Edge, 0, s.NNZ()/2+1)
	for i := 0; i < s.n; i++ {
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			if j := s.cols[p]; j >= i {
				out = append(out, Edge{From: i, To: j, Weight: s.vals[p]})
			}
		}
	}

	return out
}
