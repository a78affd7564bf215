package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/datalith/flowkit/row"
)

// Stats accumulates run-level counters across all executed nodes.
type Stats struct {
	// RowsProcessed counts every node's output rows, including destination
	// nodes (which therefore also count into RowsOutput, preserved legacy
	// accounting).
	RowsProcessed int       `json:"rowsProcessed"`
	RowsFiltered  int       `json:"rowsFiltered"`
	RowsOutput    int       `json:"rowsOutput"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

// ExecutionContext holds the transient state of one pipeline run: the
// materialized dataset of every executed node, accumulated errors, and
// stats. It is created at run start, owned exclusively by that run, and
// consumed exactly once to build the Result.
type ExecutionContext struct {
	RunID  string
	DryRun bool
	Stats  Stats

	data map[string][]row.Row
	errs []string
}

func newExecutionContext(dryRun bool) *ExecutionContext {
	return &ExecutionContext{
		RunID:  uuid.NewString(),
		DryRun: dryRun,
		Stats:  Stats{StartTime: time.Now()},
		data:   make(map[string][]row.Row),
	}
}

// setData stores a node's materialized output. Each node writes exactly
// once; downstream nodes read many times.
func (ec *ExecutionContext) setData(nodeID string, rows []row.Row) {
	ec.data[nodeID] = rows
}

// dataFor returns a node's materialized output, nil if it has not run.
func (ec *ExecutionContext) dataFor(nodeID string) []row.Row {
	return ec.data[nodeID]
}

// appendError records a run error. The error list is append-only.
func (ec *ExecutionContext) appendError(msg string) {
	ec.errs = append(ec.errs, msg)
}
