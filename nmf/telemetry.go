// SPDX-License-Identifier: MIT

package nmf

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/katalvlaran/asgdnmf/nmf"

// Phase names used for spans and the phase attribute.
const (
	phaseSample = "sample"
	phaseReplay = "replay"
	phaseTrain  = "train"
)

// telemetry bundles the tracer and instruments of one Model.
type telemetry struct {
	tracer trace.Tracer

	produced metric.Int64Counter
	fed      metric.Int64Counter
	steps    metric.Int64Counter
	phase    metric.Float64Histogram
}

// newTelemetry builds instruments from the given providers, falling back to
// the global ones.
func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*telemetry, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.produced, err = meter.Int64Counter(
		"nmf_batches_produced_total",
		metric.WithDescription("Batches produced by sampler workers"),
	)
	if err != nil {
		return nil, err
	}
	t.fed, err = meter.Int64Counter(
		"nmf_batches_fed_total",
		metric.WithDescription("Batches fed into the shuffle buffer"),
	)
	if err != nil {
		return nil, err
	}
	t.steps, err = meter.Int64Counter(
		"nmf_train_steps_total",
		metric.WithDescription("Gradient updates applied by trainer workers"),
	)
	if err != nil {
		return nil, err
	}
	t.phase, err = meter.Float64Histogram(
		"nmf_phase_duration_seconds",
		metric.WithDescription("Duration of a pipeline phase"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// startPhase opens a child span for one pipeline phase.
func (t *telemetry) startPhase(ctx context.Context, phase, runID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "nmf."+phase,
		trace.WithAttributes(
			attribute.String("nmf.run_id", runID),
			attribute.String("nmf.phase", phase),
		),
	)
}

// endPhase records the phase duration and closes span, marking it failed on err.
func (t *telemetry) endPhase(ctx context.Context, span trace.Span, phase string, d time.Duration, err error) {
	t.phase.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("phase", phase),
		attribute.Bool("success", err == nil),
	))
	failSpan(span, err)
	span.End()
}

func failSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
