// SPDX-License-Identifier: MIT

package telemetry_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/katalvlaran/asgdnmf/telemetry"
	"github.com/stretchr/testify/require"
)

func TestInitNone(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.TraceExporter = telemetry.ExporterNone
	cfg.MetricExporter = telemetry.ExporterNone
	p, shutdown, err := telemetry.Init(context.Background(), cfg)
	require.NoError(t, err)
	require.Nil(t, p.Tracer)
	require.Nil(t, p.Meter)
	require.Nil(t, p.MetricsHandler)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitStdout(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	p, shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "test",
		TraceExporter:  telemetry.ExporterStdout,
		MetricExporter: telemetry.ExporterStdout,
		Writer:         &out,
	})
	require.NoError(t, err)

	_, span := p.Tracer.Tracer("test").Start(ctx, "unit-span")
	span.End()
	counter, err := p.Meter.Meter("test").Int64Counter("unit_events")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	require.NoError(t, shutdown(ctx))
	require.Contains(t, out.String(), "unit-span")
	require.Contains(t, out.String(), "unit_events")
}

func TestInitPrometheus(t *testing.T) {
	ctx := context.Background()
	p, shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "test",
		MetricExporter: telemetry.ExporterPrometheus,
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(ctx)) }()
	require.NotNil(t, p.MetricsHandler)

	counter, err := p.Meter.Meter("test").Int64Counter("scrape_events")
	require.NoError(t, err)
	counter.Add(ctx, 2)

	srv := httptest.NewServer(p.MetricsHandler)
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "scrape_events")
}

func TestInitErrors(t *testing.T) {
	//nolint:staticcheck // nil context on purpose
	_, _, err := telemetry.Init(nil, telemetry.Config{})
	require.ErrorIs(t, err, telemetry.ErrNilContext)

	_, _, err = telemetry.Init(context.Background(), telemetry.Config{TraceExporter: "zipkin"})
	require.ErrorIs(t, err, telemetry.ErrUnknownExporter)

	_, _, err = telemetry.Init(context.Background(), telemetry.Config{MetricExporter: "graphite"})
	require.ErrorIs(t, err, telemetry.ErrUnknownExporter)
}
