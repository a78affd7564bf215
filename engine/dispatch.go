package engine

import (
	"context"

	"github.com/go-viper/mapstructure/v2"

	"github.com/datalith/flowkit/aggregate"
	"github.com/datalith/flowkit/errors"
	"github.com/datalith/flowkit/filter"
	"github.com/datalith/flowkit/join"
	"github.com/datalith/flowkit/pipeline"
	"github.com/datalith/flowkit/row"
	"github.com/datalith/flowkit/transform"
)

// dispatch routes one node to its operator or engine, stores the node's
// output in the execution context, and updates run stats. Execution order
// guarantees every upstream output is already materialized.
func (e *Engine) dispatch(ctx context.Context, ec *ExecutionContext, p *pipeline.Pipeline, node pipeline.Node) error {
	input := e.gatherInput(ec, p, node.ID)

	var output []row.Row
	var err error

	switch node.Type {
	case pipeline.Source:
		output, err = e.runSource(ctx, ec, node)
	case pipeline.Transform:
		transformType, _ := node.Config["transformType"].(string)
		output = transform.Apply(transformType, input, node.Config)
	case pipeline.Filter:
		var removed int
		output, removed = filter.Apply(input, node.Config)
		ec.Stats.RowsFiltered += removed
	case pipeline.Join:
		output, err = e.runJoin(ec, p, node)
	case pipeline.Aggregate:
		output, err = runAggregate(node, input)
	case pipeline.Destination:
		output, err = e.runDestination(ctx, ec, node, input)
	default:
		err = errors.InvalidPipeline("unknown node type " + string(node.Type))
	}
	if err != nil {
		return err
	}

	ec.setData(node.ID, output)
	ec.Stats.RowsProcessed += len(output)
	return nil
}

// gatherInput concatenates the materialized outputs of all upstream nodes,
// in edge declaration order.
func (e *Engine) gatherInput(ec *ExecutionContext, p *pipeline.Pipeline, nodeID string) []row.Row {
	var input []row.Row
	for _, edge := range p.InboundEdges(nodeID) {
		input = append(input, ec.dataFor(edge.Source)...)
	}
	return input
}

type sourceConfig struct {
	ConnectorType string `mapstructure:"connectorType"`
}

func (e *Engine) runSource(ctx context.Context, ec *ExecutionContext, node pipeline.Node) ([]row.Row, error) {
	var cfg sourceConfig
	if err := mapstructure.Decode(node.Config, &cfg); err != nil {
		return nil, errors.InvalidConfig(node.ID, err.Error())
	}
	if ec.DryRun {
		return e.port.GetSampleData(ctx, cfg.ConnectorType, node.Config)
	}
	return e.port.FetchData(ctx, cfg.ConnectorType, node.Config)
}

type joinConfig struct {
	LeftKey  string `mapstructure:"leftKey"`
	RightKey string `mapstructure:"rightKey"`
	JoinType string `mapstructure:"joinType"`
}

// runJoin combines the first two inbound edges' datasets as left/right in
// edge order. A join with fewer than two inbound edges produces the empty
// set, an explicit contract rather than an error.
func (e *Engine) runJoin(ec *ExecutionContext, p *pipeline.Pipeline, node pipeline.Node) ([]row.Row, error) {
	inbound := p.InboundEdges(node.ID)
	if len(inbound) < 2 {
		return []row.Row{}, nil
	}

	var cfg joinConfig
	if err := mapstructure.Decode(node.Config, &cfg); err != nil {
		return nil, errors.InvalidConfig(node.ID, err.Error())
	}
	if cfg.JoinType == "" {
		cfg.JoinType = string(join.Inner)
	}

	left := ec.dataFor(inbound[0].Source)
	right := ec.dataFor(inbound[1].Source)
	return join.Join(left, right, cfg.LeftKey, cfg.RightKey, join.Type(cfg.JoinType)), nil
}

type aggregateConfig struct {
	GroupBy      []string                `mapstructure:"groupBy"`
	Aggregations []aggregate.Aggregation `mapstructure:"aggregations"`
}

func runAggregate(node pipeline.Node, input []row.Row) ([]row.Row, error) {
	var cfg aggregateConfig
	if err := mapstructure.Decode(node.Config, &cfg); err != nil {
		return nil, errors.InvalidConfig(node.ID, err.Error())
	}
	return aggregate.Aggregate(input, cfg.GroupBy, cfg.Aggregations), nil
}

// runDestination writes the node's input through the Connector Port (skipped
// in dry runs, where no side effect may be committed) and passes the input
// through unchanged so downstream consumers still observe the written rows.
func (e *Engine) runDestination(ctx context.Context, ec *ExecutionContext, node pipeline.Node, input []row.Row) ([]row.Row, error) {
	var cfg sourceConfig
	if err := mapstructure.Decode(node.Config, &cfg); err != nil {
		return nil, errors.InvalidConfig(node.ID, err.Error())
	}
	if !ec.DryRun {
		if err := e.port.WriteData(ctx, cfg.ConnectorType, node.Config, input); err != nil {
			return nil, err
		}
	}
	ec.Stats.RowsOutput += len(input)
	return input, nil
}
