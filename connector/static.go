package connector

import (
	"context"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/datalith/flowkit/row"
)

// sampleLimit caps how many rows Sample returns in dry runs.
const sampleLimit = 10

// Static serves rows inlined in a node's config and buffers writes in
// memory. It performs no I/O, which makes it suitable for dry runs, tests,
// and the CLI.
type Static struct {
	mu      sync.Mutex
	written []row.Row
}

// NewStatic creates a new Static connector.
func NewStatic() *Static {
	return &Static{}
}

type staticConfig struct {
	Rows []map[string]any `mapstructure:"rows"`
}

// Fetch returns the rows embedded in the node config under "rows".
func (s *Static) Fetch(_ context.Context, config map[string]any) ([]row.Row, error) {
	var cfg staticConfig
	if err := mapstructure.Decode(config, &cfg); err != nil {
		return nil, err
	}
	rows := make([]row.Row, len(cfg.Rows))
	for i, r := range cfg.Rows {
		rows[i] = row.Row(r)
	}
	return rows, nil
}

// Sample returns at most sampleLimit of the embedded rows.
func (s *Static) Sample(ctx context.Context, config map[string]any) ([]row.Row, error) {
	rows, err := s.Fetch(ctx, config)
	if err != nil {
		return nil, err
	}
	if len(rows) > sampleLimit {
		rows = rows[:sampleLimit]
	}
	return rows, nil
}

// Write buffers the rows in memory.
func (s *Static) Write(_ context.Context, _ map[string]any, rows []row.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, rows...)
	return nil
}

// Written returns a copy of everything written so far.
func (s *Static) Written() []row.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]row.Row, len(s.written))
	copy(out, s.written)
	return out
}
