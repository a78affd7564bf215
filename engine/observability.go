package engine

import (
	"context"
	"time"

	"github.com/datalith/flowkit/logger"
	"github.com/datalith/flowkit/observability"
	"github.com/datalith/flowkit/pipeline"
)

// runNode executes one node inside a span, with duration logging and metric
// recording around the dispatch.
func (e *Engine) runNode(ctx context.Context, ec *ExecutionContext, p *pipeline.Pipeline, node pipeline.Node) (NodeResult, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.node."+node.ID)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrNodeID, node.ID)
	observability.SetSpanAttribute(ctx, observability.AttrNodeType, string(node.Type))

	start := time.Now()
	err := e.dispatch(ctx, ec, p, node)
	duration := time.Since(start)

	nr := NodeResult{
		ID:       node.ID,
		Type:     string(node.Type),
		Status:   statusCompleted,
		Duration: duration,
		Rows:     len(ec.dataFor(node.ID)),
	}

	if err != nil {
		nr.Status = statusFailed
		observability.SetSpanError(ctx, err)
		e.log.Error("node failed", logger.Fields(
			logger.FieldNode, node.ID,
			logger.FieldNodeType, string(node.Type),
			logger.FieldError, err.Error(),
		))
	} else {
		observability.SetSpanAttribute(ctx, observability.AttrRows, nr.Rows)
		e.log.Debug("node completed", logger.Fields(
			logger.FieldNode, node.ID,
			logger.FieldNodeType, string(node.Type),
			logger.FieldRows, nr.Rows,
			logger.FieldDuration, duration.Milliseconds(),
		))
	}

	if e.metrics != nil {
		e.metrics.RecordNode(ctx, node.ID, string(node.Type), nr.Status, duration)
	}

	return nr, err
}
