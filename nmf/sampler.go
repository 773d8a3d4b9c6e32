// SPDX-License-Identifier: MIT

// Package nmf - sampler worker pool (phase 1).
//
// Each worker walks the graph with its own rng and local node buffer:
//   - with probability warp it restarts at Start(), otherwise it takes one Step;
//   - a node not already in the buffer is appended;
//   - a full buffer (B nodes) becomes a Batch on the shared production list,
//     and the buffer restarts empty or with its last `window` nodes.
//
// The pool stops as soon as any worker sees CoverageComplete() once at least one
// batch exists; partial buffers are discarded. While the production list is
// still empty a covered worker gets a bounded hop budget to finish its buffer,
// so a walk that can never fill one still terminates (with no batches).
//
// A worker's first Start() node seeds its buffer, so the opening position
// counts toward the first batch.

package nmf

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/walk"
)

// coverageGrace scales the hop budget (N*B*coverageGrace) a worker may spend
// after coverage while the production list is still empty.
const coverageGrace = 4

type samplerPool struct {
	x       *matrix.Sparse
	sampler walk.Sampler
	batch   int
	window  int
	warp    float64

	stop     atomic.Bool
	produced atomic.Int64

	mu      sync.Mutex
	batches []Batch // guarded by mu

	onBatch func(context.Context)
}

// run starts one goroutine per rng and waits for all of them.
func (p *samplerPool) run(ctx context.Context, rngs []*rand.Rand) ([]Batch, error) {
	g, gCtx := errgroup.WithContext(ctx)
	for _, r := range rngs {
		g.Go(func() error {
			return p.work(gCtx, r)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return p.batches, nil
}

func (p *samplerPool) work(ctx context.Context, r *rand.Rand) error {
	buf := make([]int, 0, p.batch)
	pos := p.sampler.Start(r)
	buf = append(buf, pos)
	grace := coverageGrace * p.x.N() * p.batch

	for !p.stop.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.sampler.CoverageComplete() {
			if p.produced.Load() > 0 || grace <= 0 {
				p.stop.Store(true)
				return nil
			}
			grace--
		}
		if r.Float64() < p.warp {
			pos = p.sampler.Start(r)
		} else {
			pos = p.sampler.Step(r, pos)
		}
		if len(buf) < p.batch && !slices.Contains(buf, pos) {
			buf = append(buf, pos)
		}
		if len(buf) < p.batch {
			continue
		}

		if err := p.emit(ctx, buf); err != nil {
			return err
		}
		if p.sampler.CoverageComplete() {
			p.stop.Store(true)
			return nil
		}
		if p.window > 0 {
			n := copy(buf, buf[len(buf)-p.window:])
			buf = buf[:n]
		} else {
			buf = buf[:0]
		}
	}

	return nil
}

// emit slices the block for nodes and appends a Batch owning a copy of them.
func (p *samplerPool) emit(ctx context.Context, nodes []int) error {
	own := slices.Clone(nodes)
	block, err := p.x.Induced(own)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.batches = append(p.batches, Batch{Nodes: own, Block: block})
	p.mu.Unlock()
	p.produced.Add(1)
	if p.onBatch != nil {
		p.onBatch(ctx)
	}

	return nil
}
