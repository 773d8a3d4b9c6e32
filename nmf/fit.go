// SPDX-License-Identifier: MIT

package nmf

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/shuffle"
	"github.com/katalvlaran/asgdnmf/walk"
)

// Model is a configured factorizer. It holds no fit state, so one Model may
// run any number of (sequential or concurrent) Fit calls.
type Model struct {
	rank   int
	opts   Options
	tel    *telemetry
	logger *slog.Logger
}

// Stats summarizes one Fit.
type Stats struct {
	BatchesProduced int
	BatchesFed      int
	Steps           int64
	MaxIter         int
	BatchSize       int
	WindowSize      int

	SampleDuration time.Duration
	ReplayDuration time.Duration
	TrainDuration  time.Duration
}

// Result is the output of Fit.
type Result struct {
	RunID   string
	Factors *Factors
	Stats   Stats
}

// New validates rank and options and returns a Model.
//
// Errors: ErrBadRank, ErrOptionViolation (first invalid option wins).
func New(rank int, opts ...Option) (*Model, error) {
	if rank < 1 {
		return nil, fmt.Errorf("New: rank=%d: %w", rank, ErrBadRank)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("New: %w", o.err)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	tel, err := newTelemetry(o.tracerProvider, o.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("New: telemetry: %w", err)
	}

	return &Model{rank: rank, opts: o, tel: tel, logger: o.logger}, nil
}

// Rank returns K.
func (m *Model) Rank() int { return m.rank }

// FitEdges converts edges with matrix.FromEdges and fits the result.
func (m *Model) FitEdges(ctx context.Context, edges []matrix.Edge, opts ...matrix.Option) (*Result, error) {
	x, err := matrix.FromEdges(edges, opts...)
	if err != nil {
		return nil, fmt.Errorf("FitEdges: %w", err)
	}

	return m.Fit(ctx, x)
}

// Fit factorizes x into |W|·|H|ᵗ.
// MAIN DESCRIPTION:
//   - Two sequential phases: sample batches to full coverage, replay them into
//     a shuffle buffer, then train until the step budget is spent.
//
// Implementation:
//   - Stage 1: B = min(batchSize, N), window = min(windowSize, B-1),
//     maxIter = ⌊N·iterPerNode/B⌋; factors drawn from U(0, 2·scale).
//   - Stage 2: sampler pool until coverage.
//   - Stage 3: feed exactly maxIter+M batches (cycling the sampled list) into a
//     buffer that holds all of them, then close it.
//   - Stage 4: trainer pool until the step counter passes maxIter.
//
// Errors:
//   - ErrNilMatrix, ErrDisconnected, ErrNoBatches, sampler factory errors, and
//     ctx.Err() on cancellation (all wrapped with "Fit").
//
// Complexity:
//   - Training: O(maxIter·B²·K) in total; memory O(N·K + batches·B²).
func (m *Model) Fit(ctx context.Context, x *matrix.Sparse) (res *Result, err error) {
	if x == nil {
		return nil, fmt.Errorf("Fit: %w", ErrNilMatrix)
	}
	o := m.opts
	runID := uuid.NewString()
	log := m.logger.With("run_id", runID)

	ctx, span := m.tel.tracer.Start(ctx, "nmf.Fit", trace.WithAttributes(
		attribute.String("nmf.run_id", runID),
		attribute.Int("nmf.nodes", x.N()),
		attribute.Int("nmf.rank", m.rank),
	))
	defer func() {
		failSpan(span, err)
		span.End()
	}()

	n := x.N()
	b := min(o.batchSize, n)
	stats := Stats{
		BatchSize:  b,
		WindowSize: min(o.windowSize, b-1),
		MaxIter:    n * o.iterPerNode / b,
	}

	if o.warpProb == 0 {
		comps, _, cerr := walk.Components(x)
		if cerr != nil {
			return nil, fmt.Errorf("Fit: %w", cerr)
		}
		if comps > 1 {
			return nil, fmt.Errorf("Fit: %d components: %w", comps, ErrDisconnected)
		}
	}
	sampler, err := o.samplerFactory(x)
	if err != nil {
		return nil, fmt.Errorf("Fit: sampler: %w", err)
	}

	seed := o.seed
	if !o.seeded {
		seed = time.Now().UnixNano()
	}
	master := rand.New(rand.NewSource(seed))
	factors := newFactors(n, m.rank, initScale(x, m.rank), master)
	rngs := make([]*rand.Rand, o.samplerWorkers)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(master.Int63()))
	}
	bufRand := rand.New(rand.NewSource(master.Int63()))

	log.Info("nmf: fit start",
		"nodes", n,
		"stored", x.NNZ(),
		"rank", m.rank,
		"batch_size", stats.BatchSize,
		"window_size", stats.WindowSize,
		"warp_prob", o.warpProb,
		"learning_rate", o.learningRate,
		"iter_per_node", o.iterPerNode,
		"max_iter", stats.MaxIter,
		"sampler_workers", o.samplerWorkers,
		"trainer_workers", o.trainerWorkers,
	)

	// Phase 1: sample.
	batches, err := m.sample(ctx, runID, x, sampler, rngs, &stats)
	if err != nil {
		return nil, fmt.Errorf("Fit: sample: %w", err)
	}
	log.Info("nmf: sampling done", "batches", stats.BatchesProduced, "duration", stats.SampleDuration)

	// Phase 1b: replay into the shuffle buffer.
	need := stats.MaxIter + o.trainerWorkers
	buf, err := shuffle.New[Batch](max(o.bufferFactor*stats.MaxIter, need), shuffle.WithRand(bufRand))
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	release := context.AfterFunc(ctx, buf.Close)
	defer release()

	if err = m.replay(ctx, runID, batches, buf, need, &stats); err != nil {
		return nil, fmt.Errorf("Fit: replay: %w", err)
	}
	log.Info("nmf: replay done", "fed", stats.BatchesFed, "duration", stats.ReplayDuration)

	// Phase 2: train.
	tp := &trainerPool{
		factors: factors,
		buffer:  buf,
		lr:      o.learningRate,
		maxIter: int64(stats.MaxIter),
		batch:   b,
	}
	tp.onStep = func(ctx context.Context, step int64, batchLoss float64) {
		m.tel.steps.Add(ctx, 1)
		if o.report == nil || step%int64(o.reportEvery) != 0 {
			return
		}
		loss, lerr := factors.GlobalLoss(x)
		if lerr != nil {
			return
		}
		log.Debug("nmf: loss", "step", step, "loss", loss, "batch_loss", batchLoss)
		o.report(step, loss)
	}
	if err = m.train(ctx, runID, tp, o.trainerWorkers, &stats); err != nil {
		return nil, fmt.Errorf("Fit: train: %w", err)
	}
	log.Info("nmf: training done", "steps", stats.Steps, "duration", stats.TrainDuration)

	span.SetAttributes(
		attribute.Int("nmf.batches", stats.BatchesProduced),
		attribute.Int64("nmf.steps", stats.Steps),
	)

	return &Result{RunID: runID, Factors: factors, Stats: stats}, nil
}

func (m *Model) sample(ctx context.Context, runID string, x *matrix.Sparse, s walk.Sampler, rngs []*rand.Rand, st *Stats) (batches []Batch, err error) {
	pctx, span := m.tel.startPhase(ctx, phaseSample, runID)
	start := time.Now()
	defer func() {
		st.SampleDuration = time.Since(start)
		m.tel.endPhase(pctx, span, phaseSample, st.SampleDuration, err)
	}()

	sp := &samplerPool{
		x:       x,
		sampler: s,
		batch:   st.BatchSize,
		window:  st.WindowSize,
		warp:    m.opts.warpProb,
		onBatch: func(ctx context.Context) { m.tel.produced.Add(ctx, 1) },
	}
	batches, err = sp.run(pctx, rngs)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, ErrNoBatches
	}
	st.BatchesProduced = len(batches)

	return batches, nil
}

func (m *Model) replay(ctx context.Context, runID string, batches []Batch, buf *shuffle.Buffer[Batch], need int, st *Stats) (err error) {
	pctx, span := m.tel.startPhase(ctx, phaseReplay, runID)
	start := time.Now()
	defer func() {
		st.ReplayDuration = time.Since(start)
		m.tel.endPhase(pctx, span, phaseReplay, st.ReplayDuration, err)
	}()

	for st.BatchesFed < need {
		for _, bt := range batches {
			if st.BatchesFed == need {
				break
			}
			if err = pctx.Err(); err != nil {
				return err
			}
			if err = buf.Put(bt); err != nil {
				if cerr := pctx.Err(); cerr != nil {
					return cerr
				}
				return err
			}
			st.BatchesFed++
		}
	}
	m.tel.fed.Add(pctx, int64(st.BatchesFed))
	// No more producers: trainers drain what is left.
	buf.Close()

	return nil
}

func (m *Model) train(ctx context.Context, runID string, tp *trainerPool, workers int, st *Stats) (err error) {
	pctx, span := m.tel.startPhase(ctx, phaseTrain, runID)
	start := time.Now()
	defer func() {
		st.TrainDuration = time.Since(start)
		st.Steps = tp.steps.Load()
		m.tel.endPhase(pctx, span, phaseTrain, st.TrainDuration, err)
	}()

	return tp.run(pctx, workers)
}
