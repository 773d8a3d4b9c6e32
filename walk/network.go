// SPDX-License-Identifier: MIT

package walk

import (
	"fmt"
	"math/rand"
	"sort"
	"sync/atomic"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// Network is the default Sampler: a weighted random walk over an immutable
// adjacency with a shared, atomically maintained visited set.
type Network struct {
	n      int
	nbrs   [][]int     // neighbour ids per row (aliases the adjacency)
	cum    [][]float64 // running weight sums aligned with nbrs
	policy StartPolicy

	visited *bitset
	count   atomic.Int64
}

var _ Sampler = (*Network)(nil)

// NewNetwork prepares cumulative weight tables for every row of x.
// Errors: ErrNilAdjacency.
// Complexity: O(N + nnz) time and space.
func NewNetwork(x *matrix.Sparse, opts ...Option) (*Network, error) {
	if x == nil {
		return nil, ErrNilAdjacency
	}
	o := options{start: UnvisitedFirst}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	n := x.N()
	net := &Network{
		n:       n,
		nbrs:    make([][]int, n),
		cum:     make([][]float64, n),
		policy:  o.start,
		visited: newBitset(n),
	}
	for i := 0; i < n; i++ {
		cols, vals, err := x.Row(i)
		if err != nil {
			return nil, fmt.Errorf("NewNetwork: %w", err)
		}
		net.nbrs[i] = cols
		cum := make([]float64, len(vals))
		var s float64
		for k, v := range vals {
			s += v
			cum[k] = s
		}
		net.cum[i] = cum
	}

	return net, nil
}

// N returns the number of nodes.
func (net *Network) N() int { return net.n }

// visit marks i as visited.
func (net *Network) visit(i int) int {
	if !net.visited.testAndSet(i) {
		net.count.Add(1)
	}

	return i
}

// Start returns a start node according to the configured StartPolicy and
// marks it visited.
func (net *Network) Start(r *rand.Rand) int {
	i := r.Intn(net.n)
	if net.policy == UnvisitedFirst && net.visited.test(i) {
		if j := net.visited.nextClear(i, net.n); j >= 0 {
			i = j
		}
	}

	return net.visit(i)
}

// Step moves from cur to a neighbour drawn proportionally to edge weight.
// A node without neighbours (or an out-of-range cur) restarts via Start.
// Complexity: O(log d).
func (net *Network) Step(r *rand.Rand, cur int) int {
	if cur < 0 || cur >= net.n {
		return net.Start(r)
	}
	cum := net.cum[cur]
	if len(cum) == 0 {
		return net.Start(r)
	}
	u := r.Float64() * cum[len(cum)-1]
	k := sort.Search(len(cum), func(k int) bool { return cum[k] > u })
	if k == len(cum) { // u rounded up to the total
		k--
	}

	return net.visit(net.nbrs[cur][k])
}

// CoverageComplete reports whether every node has been visited.
func (net *Network) CoverageComplete() bool {
	return net.count.Load() >= int64(net.n)
}

// Visited reports whether node i has been visited (false when out of range).
func (net *Network) Visited(i int) bool {
	if i < 0 || i >= net.n {
		return false
	}

	return net.visited.test(i)
}

// VisitedCount returns the number of distinct visited nodes.
func (net *Network) VisitedCount() int {
	return int(net.count.Load())
}

// Reset forgets coverage. Must not run concurrently with walkers.
func (net *Network) Reset() {
	net.visited.clear()
	net.count.Store(0)
}
