// SPDX-License-Identifier: MIT

// Package walk provides weighted random-walk sampling over a matrix.Sparse
// adjacency, with global coverage tracking.
//
// The Sampler interface is the narrow capability the factorization pipeline
// depends on:
//
//   - Start(r) returns a fresh start node,
//   - Step(r, cur) moves one hop to a neighbour chosen with probability
//     proportional to edge weight,
//   - CoverageComplete() reports whether every node has been visited since
//     construction (or since the last Reset).
//
// Network is the default implementation. Walk state (the current node) lives
// with the caller and each caller passes its own *rand.Rand, so a single
// Network serves any number of concurrent walkers; coverage bookkeeping is an
// atomic bitset shared by all of them.
//
//	net, err := walk.NewNetwork(x)
//	r := rand.New(rand.NewSource(1))
//	cur := net.Start(r)
//	for !net.CoverageComplete() {
//		cur = net.Step(r, cur)
//	}
//
// Components counts connected components with a queue-based BFS; a walk that
// never restarts cannot cover a graph with more than one component.
package walk
