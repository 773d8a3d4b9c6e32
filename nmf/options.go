// SPDX-License-Identifier: MIT

package nmf

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/walk"
)

// Defaults for a Model.
const (
	DefaultBatchSize    = 32
	DefaultWindowSize   = 0
	DefaultWarpProb     = 0.1
	DefaultLearningRate = 0.01
	DefaultIterPerNode  = 10
	DefaultBufferFactor = 10

	// MinWorkers is the smallest pool size the config layer hands to New.
	MinWorkers = 2
)

// SamplerFactory builds the walk policy for one Fit call.
type SamplerFactory func(x *matrix.Sparse) (walk.Sampler, error)

// LossReportFunc receives the global loss after every n-th training step.
type LossReportFunc func(step int64, loss float64)

// Option configures a Model. An invalid value is recorded and surfaced as
// ErrOptionViolation when New is called.
type Option func(*Options)

// Options holds the resolved Model parameters.
type Options struct {
	batchSize      int
	windowSize     int
	warpProb       float64
	learningRate   float64
	iterPerNode    int
	samplerWorkers int
	trainerWorkers int
	bufferFactor   int
	seed           int64
	seeded         bool

	samplerFactory SamplerFactory
	reportEvery    int
	report         LossReportFunc

	logger         *slog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	err error
}

// DefaultWorkers returns max(MinWorkers, GOMAXPROCS).
func DefaultWorkers() int {
	return max(MinWorkers, runtime.GOMAXPROCS(0))
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		batchSize:      DefaultBatchSize,
		windowSize:     DefaultWindowSize,
		warpProb:       DefaultWarpProb,
		learningRate:   DefaultLearningRate,
		iterPerNode:    DefaultIterPerNode,
		samplerWorkers: DefaultWorkers(),
		trainerWorkers: DefaultWorkers(),
		bufferFactor:   DefaultBufferFactor,
		samplerFactory: defaultSamplerFactory,
	}
}

func defaultSamplerFactory(x *matrix.Sparse) (walk.Sampler, error) {
	return walk.NewNetwork(x)
}

// violation records the first invalid option.
func (o *Options) violation(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: %s", ErrOptionViolation, fmt.Sprintf(format, args...))
	}
}

// WithBatchSize sets the number of distinct nodes per batch (b >= 1).
// Fit caps it at the node count.
func WithBatchSize(b int) Option {
	return func(o *Options) {
		if b < 1 {
			o.violation("batch size must be >= 1 (%d)", b)
			return
		}
		o.batchSize = b
	}
}

// WithWindowSize sets how many trailing nodes of a batch seed the next one
// (w >= 0, 0 disables overlap). Fit caps it at batch size - 1.
func WithWindowSize(w int) Option {
	return func(o *Options) {
		if w < 0 {
			o.violation("window size cannot be negative (%d)", w)
			return
		}
		o.windowSize = w
	}
}

// WithWarpProb sets the per-hop restart probability, p in [0,1].
func WithWarpProb(p float64) Option {
	return func(o *Options) {
		if math.IsNaN(p) || p < 0 || p > 1 {
			o.violation("warp probability must be in [0,1] (%g)", p)
			return
		}
		o.warpProb = p
	}
}

// WithLearningRate sets the SGD step size (finite, > 0).
func WithLearningRate(lr float64) Option {
	return func(o *Options) {
		if math.IsNaN(lr) || math.IsInf(lr, 0) || lr <= 0 {
			o.violation("learning rate must be finite and > 0 (%g)", lr)
			return
		}
		o.learningRate = lr
	}
}

// WithIterPerNode sets the training budget: maxIter = N*iterPerNode/batchSize.
func WithIterPerNode(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.violation("iterations per node must be >= 1 (%d)", n)
			return
		}
		o.iterPerNode = n
	}
}

// WithSamplerWorkers sets the sampler pool size (n >= 1).
func WithSamplerWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.violation("sampler workers must be >= 1 (%d)", n)
			return
		}
		o.samplerWorkers = n
	}
}

// WithTrainerWorkers sets the trainer pool size (n >= 1).
func WithTrainerWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.violation("trainer workers must be >= 1 (%d)", n)
			return
		}
		o.trainerWorkers = n
	}
}

// WithWorkers sets both pool sizes.
func WithWorkers(n int) Option {
	return func(o *Options) {
		WithSamplerWorkers(n)(o)
		WithTrainerWorkers(n)(o)
	}
}

// WithSeed fixes every random stream of a Fit (initialization, walks, shuffle order).
// Runs are reproducible only with one sampler and one trainer worker.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithBufferFactor sizes the shuffle buffer as f*maxIter (f >= 1); the
// buffer never holds less than one full replay.
func WithBufferFactor(f int) Option {
	return func(o *Options) {
		if f < 1 {
			o.violation("buffer factor must be >= 1 (%d)", f)
			return
		}
		o.bufferFactor = f
	}
}

// WithSamplerFactory replaces the default walk.Network sampler.
func WithSamplerFactory(fn SamplerFactory) Option {
	return func(o *Options) {
		if fn == nil {
			o.violation("sampler factory is nil")
			return
		}
		o.samplerFactory = fn
	}
}

// WithLossReport computes the global loss every `every` training steps and
// passes it to fn. The computation is O(N²K) and runs on a trainer goroutine.
func WithLossReport(every int, fn LossReportFunc) Option {
	return func(o *Options) {
		if every < 1 || fn == nil {
			o.violation("loss report needs every >= 1 and a callback (every=%d)", every)
			return
		}
		o.reportEvery = every
		o.report = fn
	}
}

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider (default: global).
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider (default: global).
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}
