// SPDX-License-Identifier: MIT
// Package: builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildEdges(bopts, cons...). Resolves cfg, runs cons in order
//     against a single edge sink.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical edge lists.
//   - Safety: never panic; return sentinel errors from constructors.
//
// AI-Hints (practical):
//   - Compose constructors to overlay topologies on the same id space
//     (e.g. Cycle(n) + RandomSparse(n, p) for a ring with random chords).
//   - Use WithSeed(...) to freeze stochastic paths (RandomSparse, PlantedPartition).
//   - EdgeList.Sparse() is the shortest path to a *matrix.Sparse fixture.

package builder

import (
	"fmt"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// Constructor appends edges to the sink using the resolved builderConfig.
// Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Declare their node range via sink.grow before emitting edges.
//   - Preserve determinism for the same config and call order.
type Constructor func(s *edgeSink, cfg builderConfig) error

// EdgeList is the output of BuildEdges: N nodes (ids 0..N-1) and the undirected
// edges in emission order, each listed once.
type EdgeList struct {
	N     int
	Edges []matrix.Edge
}

// edgeSink accumulates edges for BuildEdges.
type edgeSink struct {
	n     int
	edges []matrix.Edge
}

// grow makes sure ids 0..n-1 exist.
func (s *edgeSink) grow(n int) {
	if n > s.n {
		s.n = n
	}
}

func (s *edgeSink) add(u, v int, w float64) {
	s.edges = append(s.edges, matrix.Edge{From: u, To: v, Weight: w})
}

// BuildEdges resolves the builder configuration from bopts and applies all
// constructors in order. Any constructor error is wrapped with the context
// "BuildEdges: %w" and returned immediately.
//
// Complexity:
//   - Resolving options: O(len(bopts)); applying K constructors: Σ cost of each.
//
// Errors:
//   - Wraps constructor errors via %w; callers should branch with errors.Is
//     against builder sentinels (ErrTooFewVertices, ErrInvalidProbability, ...).
func BuildEdges(bopts []BuilderOption, cons ...Constructor) (*EdgeList, error) {
	cfg := newBuilderConfig(bopts...)
	sink := &edgeSink{}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildEdges: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(sink, cfg); err != nil {
			return nil, fmt.Errorf("BuildEdges: %w", err)
		}
	}
	if sink.n == 0 {
		return nil, fmt.Errorf("BuildEdges: no nodes: %w", ErrConstructFailed)
	}

	return &EdgeList{N: sink.n, Edges: sink.edges}, nil
}

// Sparse converts the list into a symmetric adjacency of exactly N nodes.
// Repeated pairs keep the last weight; isolated ids are preserved.
func (el *EdgeList) Sparse() (*matrix.Sparse, error) {
	entries := make([]matrix.Entry, 0, 2*len(el.Edges))
	for _, e := range el.Edges {
		entries = append(entries, matrix.Entry{Row: e.From, Col: e.To, Value: e.Weight})
		if e.From != e.To {
			entries = append(entries, matrix.Entry{Row: e.To, Col: e.From, Value: e.Weight})
		}
	}

	return matrix.NewSparse(el.N, entries)
}

// BuildSparse is BuildEdges followed by EdgeList.Sparse.
func BuildSparse(bopts []BuilderOption, cons ...Constructor) (*matrix.Sparse, error) {
	el, err := BuildEdges(bopts, cons...)
	if err != nil {
		return nil, err
	}
	x, err := el.Sparse()
	if err != nil {
		return nil, fmt.Errorf("BuildSparse: %w", err)
	}

	return x, nil
}
