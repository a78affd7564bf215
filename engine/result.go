package engine

import (
	"time"

	"github.com/datalith/flowkit/row"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Success bool      `json:"success"`
	RunID   string    `json:"runId"`
	Stats   Stats     `json:"stats"`
	Errors  []string  `json:"errors,omitempty"`
	Output  []row.Row `json:"outputData,omitempty"`

	// NodeResults holds per-node outcomes, keyed by node ID.
	NodeResults map[string]NodeResult `json:"nodeResults,omitempty"`
}

// NodeResult holds the outcome of a single node execution.
type NodeResult struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Status   string        `json:"status"` // "completed" | "failed"
	Duration time.Duration `json:"duration"`
	Rows     int           `json:"rows"`
}

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)
