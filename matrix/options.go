// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for adjacency construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Edge lists are undirected by default: every (u,v) is mirrored into (v,u).
//     WithDirectedInput keeps the list as given, in which case the result must
//     already be symmetric or construction fails with ErrAsymmetry.
//   - Unweighted lists (the default) produce unit weights and collapse duplicates.
//   - Weighted lists keep Edge.Weight; for a repeated pair the last write wins.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance used by the symmetry check.
	DefaultEpsilon = 1e-9

	// DefaultWeighted false ⇒ every edge gets weight DefaultEdgeWeight.
	DefaultWeighted = false

	// DefaultDirectedInput false ⇒ mirror [u,v] into [v,u].
	DefaultDirectedInput = false

	// DefaultEdgeWeight is the weight assigned to edges of unweighted lists.
	DefaultEdgeWeight = 1.0
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps           float64 // >= 0; DefaultEpsilon
	weighted      bool    // DefaultWeighted
	directedInput bool    // DefaultDirectedInput
}

// WithEpsilon sets the tolerance used by structural checks (symmetry).
// Panics when eps is negative, NaN or ±Inf.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithWeighted makes FromEdges honor Edge.Weight instead of unit weights.
func WithWeighted() Option {
	return func(o *Options) { o.weighted = true }
}

// WithDirectedInput disables mirroring; the edge list must describe a
// symmetric matrix on its own.
func WithDirectedInput() Option {
	return func(o *Options) { o.directedInput = true }
}

// gatherOptions resolves defaults and applies opts in order (last wins).
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := Options{
		eps:           DefaultEpsilon,
		weighted:      DefaultWeighted,
		directedInput: DefaultDirectedInput,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
