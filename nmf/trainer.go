// SPDX-License-Identifier: MIT

package nmf

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/asgdnmf/shuffle"
)

// trainerPool runs phase 2: every worker takes a batch, applies one update and
// bumps the shared step counter. The first worker to count past maxIter
// raises the stop flag; each worker adds at most one step after maxIter, so
// the total lands in [maxIter+1, maxIter+workers].
type trainerPool struct {
	factors *Factors
	buffer  *shuffle.Buffer[Batch]
	lr      float64
	maxIter int64
	batch   int

	steps atomic.Int64
	stop  atomic.Bool

	onStep func(ctx context.Context, step int64, loss float64)
}

func (p *trainerPool) run(ctx context.Context, workers int) error {
	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return p.work(gCtx)
		})
	}

	return g.Wait()
}

func (p *trainerPool) work(ctx context.Context) error {
	ws, err := newWorkspace(p.batch, p.factors.k)
	if err != nil {
		return err
	}
	for !p.stop.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		bt, err := p.buffer.Take()
		if errors.Is(err, shuffle.ErrClosed) {
			// Drained (or closed by cancellation): nothing left to train on.
			return ctx.Err()
		}
		if err != nil {
			return err
		}
		loss, err := ws.step(p.factors, bt, p.lr)
		if err != nil {
			return err
		}
		n := p.steps.Add(1)
		if p.onStep != nil {
			p.onStep(ctx, n, loss)
		}
		if n > p.maxIter {
			p.stop.Store(true)
		}
	}

	return nil
}
