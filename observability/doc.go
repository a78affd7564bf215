// Package observability provides OpenTelemetry tracing and metrics setup
// for pipeline runs: OTLP HTTP exporters, span helpers, and the metric
// instruments the engine records per node execution.
package observability
