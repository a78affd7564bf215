package engine

import (
	"context"
	"time"

	"github.com/datalith/flowkit/connector"
	"github.com/datalith/flowkit/logger"
	"github.com/datalith/flowkit/observability"
	"github.com/datalith/flowkit/pipeline"
	"github.com/datalith/flowkit/row"
)

// Engine executes pipelines. It is safe for concurrent use: each run owns
// its ExecutionContext and the Pipeline definition is never modified.
type Engine struct {
	port    connector.Port
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics enables per-node metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an Engine backed by the given Connector Port.
func New(port connector.Port, opts ...Option) *Engine {
	e := &Engine{
		port: port,
		log:  logger.NewDefault("flowkit").WithComponent("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options control one pipeline run.
type Options struct {
	// DryRun substitutes sample data for source reads and skips destination
	// writes; no connector side effect is committed.
	DryRun bool
}

// Execute runs a pipeline to completion and returns its result. All
// failures, from structural validation and cycles to connector and node
// errors, are reported through the Result; nodes after the first failure
// do not execute.
func (e *Engine) Execute(ctx context.Context, p *pipeline.Pipeline, opts Options) *Result {
	ec := newExecutionContext(opts.DryRun)
	log := e.log.WithFields(logger.Fields(
		logger.FieldPipeline, p.ID,
		logger.FieldRunID, ec.RunID,
		logger.FieldDryRun, opts.DryRun,
	))

	ctx, span := observability.StartSpan(ctx, "pipeline.execute")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPipelineID, p.ID)
	observability.SetSpanAttribute(ctx, observability.AttrRunID, ec.RunID)
	observability.SetSpanAttribute(ctx, observability.AttrDryRun, opts.DryRun)

	if err := p.Validate(); err != nil {
		return e.fail(ctx, ec, log, err)
	}

	order, err := Order(p)
	if err != nil {
		return e.fail(ctx, ec, log, err)
	}

	log.Info("pipeline run started", logger.Fields("nodes", len(order)))

	nodeResults := make(map[string]NodeResult, len(order))
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return e.fail(ctx, ec, log, err)
		}

		node, _ := p.NodeByID(id)
		nr, err := e.runNode(ctx, ec, p, node)
		nodeResults[id] = nr
		if err != nil {
			res := e.fail(ctx, ec, log, err)
			res.NodeResults = nodeResults
			return res
		}
	}

	ec.Stats.EndTime = time.Now()

	var output []row.Row
	for _, n := range p.TerminalNodes() {
		output = append(output, ec.dataFor(n.ID)...)
	}

	if e.metrics != nil {
		e.metrics.RecordRows(ctx, p.ID, ec.Stats.RowsProcessed, ec.Stats.RowsFiltered, ec.Stats.RowsOutput)
	}
	log.Info("pipeline run completed", logger.Fields(
		"rows_processed", ec.Stats.RowsProcessed,
		"rows_filtered", ec.Stats.RowsFiltered,
		"rows_output", ec.Stats.RowsOutput,
		logger.FieldDuration, ec.Stats.EndTime.Sub(ec.Stats.StartTime).Milliseconds(),
	))

	return &Result{
		Success:     true,
		RunID:       ec.RunID,
		Stats:       ec.Stats,
		Output:      output,
		NodeResults: nodeResults,
	}
}

// fail finalizes a run after the first error: stamps the end time, records
// the error, and returns an unsuccessful result with no output data.
func (e *Engine) fail(ctx context.Context, ec *ExecutionContext, log *logger.Logger, err error) *Result {
	ec.Stats.EndTime = time.Now()
	ec.appendError(err.Error())
	observability.SetSpanError(ctx, err)
	log.Error("pipeline run failed", logger.Fields(logger.FieldError, err.Error()))

	return &Result{
		Success: false,
		RunID:   ec.RunID,
		Stats:   ec.Stats,
		Errors:  ec.errs,
	}
}
