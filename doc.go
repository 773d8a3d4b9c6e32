// SPDX-License-Identifier: MIT

// Package asgdnmf is an asynchronous, sampling-based non-negative matrix
// factorization toolkit for community detection on large sparse graphs.
//
// A graph X (symmetric, non-negative) is approximated by |W|·|H|ᵗ with
// N×K factors. Training batches come from concurrent random walks and are
// consumed in shuffled order by concurrent Hogwild trainers.
//
// Subpackages:
//
//	matrix/  — Dense (row-major, blas64 products) and Sparse (CSR) matrices, edge-list conversion
//	builder/ — deterministic graph constructors (cycle, grid, planted partition, …)
//	walk/    — weighted random-walk Sampler with atomic coverage tracking
//	shuffle/ — bounded buffer with uniform random removal
//	nmf/     — the sampling/training pipeline, factor store and gradient kernel
//	config/  — YAML + NMF_* environment configuration
//	graphio/ — edge-list reading, label and factor CSV writing
//	telemetry/ — OpenTelemetry SDK providers (stdout, OTLP, Prometheus) for the CLI
//	cmd/asgdnmf — command-line front end (fit, synth)
//
// Quick example:
//
//	x, _ := matrix.FromEdges([]matrix.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}})
//	m, _ := nmf.New(2, nmf.WithBatchSize(4), nmf.WithSeed(1))
//	res, _ := m.Fit(context.Background(), x)
//	fmt.Println(res.Factors.CommunityLabels())
package asgdnmf
