// SPDX-License-Identifier: MIT

package nmf_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/asgdnmf/builder"
	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/nmf"
	"github.com/katalvlaran/asgdnmf/walk"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cycle4(tb testing.TB) *matrix.Sparse {
	tb.Helper()
	x, err := matrix.FromEdges([]matrix.Edge{
		{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0},
	})
	require.NoError(tb, err)

	return x
}

func requireNonNegative(tb testing.TB, m *matrix.Dense) {
	tb.Helper()
	for i, v := range m.RawData() {
		require.GreaterOrEqual(tb, v, 0.0, "entry %d", i)
	}
}

// TestFitCycle4 runs the 4-node ring scenario with single-worker pools.
func TestFitCycle4(t *testing.T) {
	x := cycle4(t)
	var losses []float64
	m, err := nmf.New(2,
		nmf.WithBatchSize(4),
		nmf.WithWindowSize(0),
		nmf.WithWarpProb(1.0),
		nmf.WithIterPerNode(50),
		nmf.WithWorkers(1),
		nmf.WithSeed(42),
		nmf.WithLogger(quietLogger()),
		nmf.WithLossReport(1, func(_ int64, loss float64) { losses = append(losses, loss) }),
	)
	require.NoError(t, err)

	res, err := m.Fit(context.Background(), x)
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)

	w, h := res.Factors.W(), res.Factors.H()
	r, c := w.Shape()
	require.Equal(t, [2]int{4, 2}, [2]int{r, c})
	r, c = h.Shape()
	require.Equal(t, [2]int{4, 2}, [2]int{r, c})
	requireNonNegative(t, w)
	requireNonNegative(t, h)

	// Readout is idempotent.
	require.True(t, w.Equal(res.Factors.W()))
	require.True(t, h.Equal(res.Factors.H()))

	require.Equal(t, 50, res.Stats.MaxIter)
	require.GreaterOrEqual(t, res.Stats.Steps, int64(50))
	require.LessOrEqual(t, res.Stats.Steps, int64(51))
	require.Len(t, losses, int(res.Stats.Steps))

	final, err := res.Factors.GlobalLoss(x)
	require.NoError(t, err)
	require.Equal(t, losses[len(losses)-1], final)
	require.Less(t, final, losses[0])

	labels := res.Factors.CommunityLabels()
	require.Len(t, labels, 4)
	for _, l := range labels {
		require.True(t, l == 0 || l == 1)
	}
}

// TestFitStepBounds checks maxIter <= steps <= maxIter + trainers.
func TestFitStepBounds(t *testing.T) {
	x, err := builder.BuildSparse([]builder.BuilderOption{builder.WithSeed(5)},
		builder.PlantedPartition(3, 12, 0.6, 0.05))
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 8} {
		m, err := nmf.New(3,
			nmf.WithBatchSize(8),
			nmf.WithWindowSize(2),
			nmf.WithIterPerNode(5),
			nmf.WithWorkers(workers),
			nmf.WithSeed(int64(workers)),
			nmf.WithLogger(quietLogger()),
		)
		require.NoError(t, err)
		res, err := m.Fit(context.Background(), x)
		require.NoError(t, err)

		st := res.Stats
		require.Equal(t, 36*5/8, st.MaxIter)
		require.Equal(t, st.MaxIter+workers, st.BatchesFed)
		require.GreaterOrEqual(t, st.Steps, int64(st.MaxIter), "workers=%d", workers)
		require.LessOrEqual(t, st.Steps, int64(st.MaxIter+workers), "workers=%d", workers)
		require.Positive(t, st.BatchesProduced)
		requireNonNegative(t, res.Factors.W())
		require.Len(t, res.Factors.CommunityLabels(), 36)
	}
}

func TestFitDeterministic(t *testing.T) {
	x, err := builder.BuildSparse(nil, builder.Grid(5, 5))
	require.NoError(t, err)

	run := func() *nmf.Result {
		m, err := nmf.New(3, nmf.WithBatchSize(6), nmf.WithWorkers(1), nmf.WithSeed(7), nmf.WithLogger(quietLogger()))
		require.NoError(t, err)
		res, err := m.Fit(context.Background(), x)
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	require.True(t, a.Factors.W().Equal(b.Factors.W()))
	require.True(t, a.Factors.H().Equal(b.Factors.H()))
	require.NotEqual(t, a.RunID, b.RunID)
}

// TestFitCaps checks batch size is capped at N and window below it.
func TestFitCaps(t *testing.T) {
	m, err := nmf.New(2, nmf.WithBatchSize(100), nmf.WithWindowSize(100), nmf.WithWorkers(2), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	res, err := m.Fit(context.Background(), cycle4(t))
	require.NoError(t, err)
	require.Equal(t, 4, res.Stats.BatchSize)
	require.Equal(t, 3, res.Stats.WindowSize)
	require.Equal(t, 4*nmf.DefaultIterPerNode/4, res.Stats.MaxIter)
}

func TestFitEdges(t *testing.T) {
	m, err := nmf.New(2, nmf.WithBatchSize(3), nmf.WithWorkers(2), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	res, err := m.FitEdges(context.Background(), []matrix.Edge{
		{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0}, {From: 2, To: 3}, {From: 3, To: 4},
	})
	require.NoError(t, err)
	require.Equal(t, 5, res.Factors.Rows())
	require.Equal(t, 2, res.Factors.Rank())

	_, err = m.FitEdges(context.Background(), nil)
	require.ErrorIs(t, err, matrix.ErrEmptyGraph)
}

func TestNewErrors(t *testing.T) {
	_, err := nmf.New(0)
	require.ErrorIs(t, err, nmf.ErrBadRank)

	bad := map[string]nmf.Option{
		"batch":      nmf.WithBatchSize(0),
		"window":     nmf.WithWindowSize(-1),
		"warp-neg":   nmf.WithWarpProb(-0.1),
		"warp-big":   nmf.WithWarpProb(1.5),
		"lr-zero":    nmf.WithLearningRate(0),
		"iter":       nmf.WithIterPerNode(0),
		"samplers":   nmf.WithSamplerWorkers(0),
		"trainers":   nmf.WithTrainerWorkers(-2),
		"workers":    nmf.WithWorkers(0),
		"buffer":     nmf.WithBufferFactor(0),
		"factory":    nmf.WithSamplerFactory(nil),
		"report-fn":  nmf.WithLossReport(1, nil),
		"report-cnt": nmf.WithLossReport(0, func(int64, float64) {}),
	}
	for name, opt := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := nmf.New(2, opt)
			require.ErrorIs(t, err, nmf.ErrOptionViolation)
		})
	}
}

// frozenSampler never leaves node 0 yet claims full coverage.
type frozenSampler struct{}

func (frozenSampler) Start(*rand.Rand) int { return 0 }

func (frozenSampler) Step(*rand.Rand, int) int { return 0 }

func (frozenSampler) CoverageComplete() bool { return true }

func TestFitErrors(t *testing.T) {
	ctx := context.Background()
	m, err := nmf.New(2, nmf.WithWorkers(2), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = m.Fit(ctx, nil)
	require.ErrorIs(t, err, nmf.ErrNilMatrix)

	// Two disjoint edges cannot be covered without restarts.
	split, err := matrix.FromEdges([]matrix.Edge{{From: 0, To: 1}, {From: 2, To: 3}})
	require.NoError(t, err)
	noWarp, err := nmf.New(2, nmf.WithWarpProb(0), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = noWarp.Fit(ctx, split)
	require.ErrorIs(t, err, nmf.ErrDisconnected)

	// With restarts the same graph fits.
	_, err = m.Fit(ctx, split)
	require.NoError(t, err)

	boom := errors.New("boom")
	failing, err := nmf.New(2, nmf.WithSamplerFactory(func(*matrix.Sparse) (walk.Sampler, error) {
		return nil, boom
	}), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = failing.Fit(ctx, split)
	require.ErrorIs(t, err, boom)

	// A walk that reports coverage but cannot fill a batch ends with no batches.
	stuck, err := nmf.New(2, nmf.WithBatchSize(3), nmf.WithWorkers(2),
		nmf.WithSamplerFactory(func(*matrix.Sparse) (walk.Sampler, error) {
			return frozenSampler{}, nil
		}), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = stuck.Fit(ctx, cycle4(t))
	require.ErrorIs(t, err, nmf.ErrNoBatches)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Fit(cancelled, cycle4(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestGlobalLossShape(t *testing.T) {
	m, err := nmf.New(2, nmf.WithWorkers(2), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	res, err := m.Fit(context.Background(), cycle4(t))
	require.NoError(t, err)

	_, err = res.Factors.GlobalLoss(nil)
	require.ErrorIs(t, err, nmf.ErrNilMatrix)
	other, err := builder.BuildSparse(nil, builder.Path(5))
	require.NoError(t, err)
	_, err = res.Factors.GlobalLoss(other)
	require.ErrorIs(t, err, nmf.ErrShapeMismatch)
}

// TestGlobalLossMatchesDense compares the row kernel with a dense reconstruction.
func TestGlobalLossMatchesDense(t *testing.T) {
	x, err := builder.BuildSparse([]builder.BuilderOption{builder.WithSeed(2)}, builder.RandomSparse(15, 0.3))
	require.NoError(t, err)
	m, err := nmf.New(3, nmf.WithBatchSize(5), nmf.WithWorkers(2), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	res, err := m.Fit(context.Background(), x)
	require.NoError(t, err)

	recon, err := matrix.MulT(res.Factors.W(), res.Factors.H())
	require.NoError(t, err)
	xd, err := x.ToDense()
	require.NoError(t, err)
	var want float64
	for i, v := range recon.RawData() {
		d := v - xd.RawData()[i]
		want += d * d
	}
	got, err := res.Factors.GlobalLoss(x)
	require.NoError(t, err)
	require.InDelta(t, 0.5*want, got, 1e-9*(1+want))
}

// TestFitLogs checks phase logs carry the run id.
func TestFitLogs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := nmf.New(2, nmf.WithWorkers(2), nmf.WithLogger(logger),
		nmf.WithLossReport(5, func(int64, float64) {}))
	require.NoError(t, err)
	res, err := m.Fit(context.Background(), cycle4(t))
	require.NoError(t, err)

	msgs := map[string]int{}
	dec := json.NewDecoder(&out)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		require.Equal(t, res.RunID, rec["run_id"])
		msgs[rec["msg"].(string)]++
	}
	for _, msg := range []string{"nmf: fit start", "nmf: sampling done", "nmf: replay done", "nmf: training done"} {
		require.Equal(t, 1, msgs[msg], msg)
	}
	require.Positive(t, msgs["nmf: loss"])
}

// TestFitConcurrentUpdates stresses Hogwild updates on a larger graph.
func TestFitConcurrentUpdates(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	x, err := builder.BuildSparse([]builder.BuilderOption{builder.WithRand(rand.New(rand.NewSource(8)))},
		builder.PlantedPartition(4, 25, 0.3, 0.01))
	require.NoError(t, err)
	m, err := nmf.New(4, nmf.WithBatchSize(16), nmf.WithWindowSize(4), nmf.WithWorkers(8), nmf.WithLogger(quietLogger()))
	require.NoError(t, err)
	res, err := m.Fit(context.Background(), x)
	require.NoError(t, err)
	requireNonNegative(t, res.Factors.W())
	requireNonNegative(t, res.Factors.H())
	loss, err := res.Factors.GlobalLoss(x)
	require.NoError(t, err)
	require.False(t, math.IsNaN(loss))
}
