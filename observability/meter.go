package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/datalith/flowkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the metric instruments recorded per pipeline run.
type Metrics struct {
	nodeTotal     metric.Int64Counter
	nodeDuration  metric.Float64Histogram
	rowsProcessed metric.Int64Counter
	rowsFiltered  metric.Int64Counter
	rowsOutput    metric.Int64Counter
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	nodeTotal, err := meter.Int64Counter("pipeline.node.total",
		metric.WithDescription("Total number of executed pipeline nodes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.node.total counter: %w", err)
	}

	nodeDuration, err := meter.Float64Histogram("pipeline.node.duration",
		metric.WithDescription("Duration of node executions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.node.duration histogram: %w", err)
	}

	rowsProcessed, err := meter.Int64Counter("pipeline.rows.processed",
		metric.WithDescription("Rows materialized by executed nodes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.rows.processed counter: %w", err)
	}

	rowsFiltered, err := meter.Int64Counter("pipeline.rows.filtered",
		metric.WithDescription("Rows removed by filter nodes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.rows.filtered counter: %w", err)
	}

	rowsOutput, err := meter.Int64Counter("pipeline.rows.output",
		metric.WithDescription("Rows written by destination nodes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.rows.output counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pipeline.error.total",
		metric.WithDescription("Total number of failed node executions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.error.total counter: %w", err)
	}

	return &Metrics{
		nodeTotal:     nodeTotal,
		nodeDuration:  nodeDuration,
		rowsProcessed: rowsProcessed,
		rowsFiltered:  rowsFiltered,
		rowsOutput:    rowsOutput,
		errorTotal:    errorTotal,
	}, nil
}

// RecordNode records one node execution with its status and duration.
func (m *Metrics) RecordNode(ctx context.Context, nodeID, nodeType, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrNodeID, nodeID),
		attribute.String(AttrNodeType, nodeType),
		attribute.String(AttrStatus, status),
	)
	m.nodeTotal.Add(ctx, 1, attrs)
	m.nodeDuration.Record(ctx, duration.Seconds(), attrs)
	if status == "failed" {
		m.errorTotal.Add(ctx, 1, attrs)
	}
}

// RecordRows records the run-level row counters.
func (m *Metrics) RecordRows(ctx context.Context, pipelineID string, processed, filtered, output int) {
	attrs := metric.WithAttributes(attribute.String(AttrPipelineID, pipelineID))
	m.rowsProcessed.Add(ctx, int64(processed), attrs)
	m.rowsFiltered.Add(ctx, int64(filtered), attrs)
	m.rowsOutput.Add(ctx, int64(output), attrs)
}
