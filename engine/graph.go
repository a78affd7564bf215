package engine

import (
	"github.com/datalith/flowkit/errors"
	"github.com/datalith/flowkit/pipeline"
)

// Order computes a topological execution order using Kahn's algorithm.
//
// The order is deterministic: nodes become ready in pipeline declaration
// order and the ready queue is FIFO, so identical definitions always yield
// the same order. A cycle is a configuration error, surfaced before any
// node executes.
func Order(p *pipeline.Pipeline) ([]string, error) {
	inDegree := make(map[string]int, len(p.Nodes))
	successors := make(map[string][]string)

	for _, n := range p.Nodes {
		inDegree[n.ID] = 0
	}

	for _, e := range p.Edges {
		if _, ok := inDegree[e.Source]; !ok {
			return nil, errors.UnknownNode(e.Source)
		}
		if _, ok := inDegree[e.Target]; !ok {
			return nil, errors.UnknownNode(e.Target)
		}
		inDegree[e.Target]++
		successors[e.Source] = append(successors[e.Source], e.Target)
	}

	var queue []string
	for _, n := range p.Nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(p.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, succ := range successors[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != len(p.Nodes) {
		return nil, errors.CycleDetected(len(order), len(p.Nodes))
	}
	return order, nil
}
