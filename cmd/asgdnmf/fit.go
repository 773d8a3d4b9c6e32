// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/asgdnmf/config"
	"github.com/katalvlaran/asgdnmf/graphio"
	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/nmf"
	"github.com/katalvlaran/asgdnmf/telemetry"
)

type fitFlags struct {
	edges         string
	configPath    string
	weighted      bool
	directedInput bool
	rank          int
	seed          int64
	reportLoss    int
	labelsOut     string
	wOut          string
	hOut          string

	traceExporter  string
	metricExporter string
	otlpEndpoint   string
	metricsAddr    string
}

func newFitCmd(rf *rootFlags) *cobra.Command {
	ff := &fitFlags{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Factorize an edge-list graph and write community labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFit(cmd, rf, ff)
		},
	}
	f := cmd.Flags()
	f.StringVar(&ff.edges, "edges", "", "edge list file (csv or whitespace separated)")
	f.StringVar(&ff.configPath, "config", "", "YAML config file")
	f.BoolVar(&ff.weighted, "weighted", false, "read the third column as edge weight")
	f.BoolVar(&ff.directedInput, "directed-input", false, "do not mirror edges; the list must already be symmetric")
	f.IntVar(&ff.rank, "rank", config.DefaultRank, "factorization rank K (overrides config)")
	f.Int64Var(&ff.seed, "seed", 0, "random seed (overrides config)")
	f.IntVar(&ff.reportLoss, "report-loss", 0, "log the global loss every N steps (overrides config)")
	f.StringVar(&ff.labelsOut, "labels-out", "", "write node,community CSV")
	f.StringVar(&ff.wOut, "w-out", "", "write |W| CSV")
	f.StringVar(&ff.hOut, "h-out", "", "write |H| CSV")
	tel := telemetry.DefaultConfig()
	f.StringVar(&ff.traceExporter, "trace-exporter", tel.TraceExporter, "trace exporter: none, stdout, otlp")
	f.StringVar(&ff.metricExporter, "metric-exporter", tel.MetricExporter, "metric exporter: none, stdout, prometheus")
	f.StringVar(&ff.otlpEndpoint, "otlp-endpoint", tel.OTLPEndpoint, "OTLP gRPC endpoint")
	f.StringVar(&ff.metricsAddr, "metrics-addr", ":9090", "listen address for /metrics (prometheus exporter)")
	_ = cmd.MarkFlagRequired("edges")

	return cmd
}

func runFit(cmd *cobra.Command, rf *rootFlags, ff *fitFlags) error {
	logger, err := rf.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, err := config.Load(ff.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("rank") {
		cfg.Rank = ff.rank
	}
	if flags.Changed("seed") {
		cfg.Seed = &ff.seed
	}
	if flags.Changed("report-loss") {
		cfg.Training.LossReportEvery = ff.reportLoss
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	edges, err := graphio.ReadEdgeListFile(ff.edges, ff.weighted)
	if err != nil {
		return err
	}
	var mopts []matrix.Option
	if ff.weighted {
		mopts = append(mopts, matrix.WithWeighted())
	}
	if ff.directedInput {
		mopts = append(mopts, matrix.WithDirectedInput())
	}
	x, err := matrix.FromEdges(edges, mopts...)
	if err != nil {
		return err
	}
	logger.Info("graph loaded", "file", ff.edges, "edges", len(edges), "nodes", x.N())

	providers, shutdown, err := startTelemetry(cmd, logger, ff)
	if err != nil {
		return err
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			logger.Warn("telemetry shutdown", "error", serr)
		}
	}()

	extra := []nmf.Option{nmf.WithLogger(logger)}
	if providers.Tracer != nil {
		extra = append(extra, nmf.WithTracerProvider(providers.Tracer))
	}
	if providers.Meter != nil {
		extra = append(extra, nmf.WithMeterProvider(providers.Meter))
	}
	if every := cfg.Training.LossReportEvery; every > 0 {
		extra = append(extra, nmf.WithLossReport(every, func(step int64, loss float64) {
			logger.Info("loss", "step", step, "loss", loss)
		}))
	}
	model, err := cfg.Model(extra...)
	if err != nil {
		return err
	}
	res, err := model.Fit(cmd.Context(), x)
	if err != nil {
		return err
	}

	loss, err := res.Factors.GlobalLoss(x)
	if err != nil {
		return err
	}
	if err = writeOutputs(logger, ff, res.Factors); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run_id: %s\n", res.RunID)
	fmt.Fprintf(out, "nodes: %d rank: %d\n", res.Factors.Rows(), res.Factors.Rank())
	fmt.Fprintf(out, "batches: %d steps: %d\n", res.Stats.BatchesProduced, res.Stats.Steps)
	fmt.Fprintf(out, "global loss: %g\n", loss)

	return nil
}

// startTelemetry builds the exporters and, for prometheus, serves /metrics
// until the returned shutdown is called.
func startTelemetry(cmd *cobra.Command, logger *slog.Logger, ff *fitFlags) (*telemetry.Providers, func(context.Context) error, error) {
	tcfg := telemetry.DefaultConfig()
	tcfg.TraceExporter = ff.traceExporter
	tcfg.MetricExporter = ff.metricExporter
	tcfg.OTLPEndpoint = ff.otlpEndpoint
	tcfg.Writer = cmd.ErrOrStderr()
	providers, shutdown, err := telemetry.Init(cmd.Context(), tcfg)
	if err != nil {
		return nil, nil, err
	}
	if providers.MetricsHandler == nil {
		return providers, shutdown, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", providers.MetricsHandler)
	srv := &http.Server{Addr: ff.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", ff.metricsAddr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ff.metricsAddr)

	return providers, func(ctx context.Context) error {
		return errors.Join(srv.Shutdown(ctx), shutdown(ctx))
	}, nil
}

func writeOutputs(logger *slog.Logger, ff *fitFlags, f *nmf.Factors) error {
	outputs := []struct {
		path  string
		write func(io.Writer) error
	}{
		{ff.labelsOut, func(w io.Writer) error { return graphio.WriteLabels(w, f.CommunityLabels()) }},
		{ff.wOut, func(w io.Writer) error { return graphio.WriteFactors(w, f.W()) }},
		{ff.hOut, func(w io.Writer) error { return graphio.WriteFactors(w, f.H()) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := graphio.WriteFile(o.path, o.write); err != nil {
			return err
		}
		logger.Info("wrote", "file", o.path)
	}

	return nil
}
