// Package pipeline defines pipeline, node, and edge definitions, their YAML
// loading, and structural validation.
//
// A Pipeline is immutable for the duration of a run; the engine never
// modifies it, so independent runs of the same definition may execute
// concurrently.
package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/datalith/flowkit/errors"
)

// NodeType identifies what a node does with its input datasets.
type NodeType string

const (
	Source      NodeType = "source"
	Transform   NodeType = "transform"
	Filter      NodeType = "filter"
	Join        NodeType = "join"
	Aggregate   NodeType = "aggregate"
	Destination NodeType = "destination"
)

// Pipeline is a DAG of typed processing nodes.
type Pipeline struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Nodes []Node `yaml:"nodes" json:"nodes" validate:"required,min=1,dive"`
	Edges []Edge `yaml:"edges" json:"edges" validate:"dive"`
}

// Node is one processing step. Config is a type-tagged bag whose shape
// depends on Type (and, for transforms, on config's transformType).
type Node struct {
	ID     string         `yaml:"id" json:"id" validate:"required"`
	Type   NodeType       `yaml:"type" json:"type" validate:"required,oneof=source transform filter join aggregate destination"`
	Config map[string]any `yaml:"config" json:"config"`
}

// Edge declares that Target consumes Source's output dataset.
type Edge struct {
	Source string `yaml:"source" json:"source" validate:"required"`
	Target string `yaml:"target" json:"target" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the pipeline's structure: struct-level constraints, unique
// node IDs, and edge endpoints that reference existing nodes. Cycle
// detection happens separately when the engine orders the graph.
func (p *Pipeline) Validate() error {
	if err := validate.Struct(p); err != nil {
		return apperrors.InvalidPipeline(err.Error())
	}

	ids := make(map[string]struct{}, len(p.Nodes))
	for _, n := range p.Nodes {
		if _, dup := ids[n.ID]; dup {
			return apperrors.InvalidPipeline(fmt.Sprintf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = struct{}{}
	}

	for _, e := range p.Edges {
		if _, ok := ids[e.Source]; !ok {
			return apperrors.UnknownNode(e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return apperrors.UnknownNode(e.Target)
		}
	}
	return nil
}

// NodeByID returns the node with the given id.
func (p *Pipeline) NodeByID(id string) (Node, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// InboundEdges returns the edges targeting a node, in declaration order.
func (p *Pipeline) InboundEdges(nodeID string) []Edge {
	var in []Edge
	for _, e := range p.Edges {
		if e.Target == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// TerminalNodes returns the nodes with no outgoing edges, in declaration
// order. Their materialized outputs form the run's final output dataset.
func (p *Pipeline) TerminalNodes() []Node {
	hasOut := make(map[string]bool, len(p.Nodes))
	for _, e := range p.Edges {
		hasOut[e.Source] = true
	}
	var terminals []Node
	for _, n := range p.Nodes {
		if !hasOut[n.ID] {
			terminals = append(terminals, n)
		}
	}
	return terminals
}
