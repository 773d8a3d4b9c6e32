// SPDX-License-Identifier: MIT

package walk

import "math/rand"

// Sampler is a weighted random-walk policy with coverage bookkeeping.
// Implementations must be safe for concurrent use when every caller supplies
// its own *rand.Rand.
type Sampler interface {
	// Start returns a fresh start node.
	Start(r *rand.Rand) int

	// Step returns the next node of a walk currently at cur.
	Step(r *rand.Rand, cur int) int

	// CoverageComplete reports whether every node has been visited at least once.
	CoverageComplete() bool
}

// StartPolicy selects how Start picks a node.
type StartPolicy int

const (
	// UnvisitedFirst draws a uniform node and, when it is already visited,
	// advances to the next unvisited one, so every restart extends coverage.
	UnvisitedFirst StartPolicy = iota

	// UniformStart draws a uniform node regardless of coverage.
	UniformStart
)

// String implements fmt.Stringer.
func (p StartPolicy) String() string {
	switch p {
	case UnvisitedFirst:
		return "unvisited-first"
	case UniformStart:
		return "uniform"
	default:
		return "unknown"
	}
}

// Option configures a Network. Option constructors panic on invalid values.
type Option func(*options)

type options struct {
	start StartPolicy
}

// WithStartPolicy sets the restart policy. Panics on an unknown policy.
func WithStartPolicy(p StartPolicy) Option {
	if p != UnvisitedFirst && p != UniformStart {
		panic("walk: WithStartPolicy: unknown policy")
	}

	return func(o *options) { o.start = p }
}
