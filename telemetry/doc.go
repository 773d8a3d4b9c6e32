// SPDX-License-Identifier: MIT

// Package telemetry builds OpenTelemetry SDK providers for the command-line
// front end and hands them to nmf via WithTracerProvider / WithMeterProvider.
//
// Exporters:
//
//	traces:  "stdout", "otlp" (gRPC), "none"
//	metrics: "stdout", "prometheus" (served by MetricsHandler), "none"
//
// Init returns a shutdown function that flushes and stops every provider it
// created; it must be called before the process exits.
package telemetry
