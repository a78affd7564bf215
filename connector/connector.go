// Package connector defines the Connector Port, the single injected
// capability the engine uses to fetch rows for source nodes and write rows
// for destination nodes, plus a registry that routes connector types to
// registered implementations.
//
// Physical connector implementations (databases, APIs, object stores) live
// outside this module; only the contract and a no-I/O static connector are
// provided here.
package connector

import (
	"context"
	"sort"
	"sync"

	"github.com/datalith/flowkit/errors"
	"github.com/datalith/flowkit/row"
)

// Port is the capability the engine is constructed with.
type Port interface {
	// FetchData returns the rows of a source node in a real run.
	// A failure aborts the whole pipeline run.
	FetchData(ctx context.Context, connectorType string, config map[string]any) ([]row.Row, error)
	// GetSampleData returns representative rows for dry runs. It must not
	// perform real I/O or side effects.
	GetSampleData(ctx context.Context, connectorType string, config map[string]any) ([]row.Row, error)
	// WriteData writes a destination node's input rows. Never called in
	// dry-run mode.
	WriteData(ctx context.Context, connectorType string, config map[string]any, rows []row.Row) error
}

// Connector is one named connector implementation.
type Connector interface {
	Fetch(ctx context.Context, config map[string]any) ([]row.Row, error)
	Sample(ctx context.Context, config map[string]any) ([]row.Row, error)
	Write(ctx context.Context, config map[string]any, rows []row.Row) error
}

// Registry provides named connector lookup and implements Port by routing
// each call to the connector registered under the requested type.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{connectors: make(map[string]Connector)}
}

// Register adds a connector to the registry.
func (r *Registry) Register(connectorType string, c Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[connectorType] = c
}

// Get retrieves a connector by type.
func (r *Registry) Get(connectorType string) (Connector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[connectorType]
	return c, ok
}

// List returns sorted types of all registered connectors.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.connectors))
	for t := range r.connectors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// FetchData implements Port.
func (r *Registry) FetchData(ctx context.Context, connectorType string, config map[string]any) ([]row.Row, error) {
	c, ok := r.Get(connectorType)
	if !ok {
		return nil, errors.UnknownConnector(connectorType)
	}
	rows, err := c.Fetch(ctx, config)
	if err != nil {
		return nil, errors.ConnectorFailed("fetch", connectorType, err)
	}
	return rows, nil
}

// GetSampleData implements Port.
func (r *Registry) GetSampleData(ctx context.Context, connectorType string, config map[string]any) ([]row.Row, error) {
	c, ok := r.Get(connectorType)
	if !ok {
		return nil, errors.UnknownConnector(connectorType)
	}
	rows, err := c.Sample(ctx, config)
	if err != nil {
		return nil, errors.ConnectorFailed("sample", connectorType, err)
	}
	return rows, nil
}

// WriteData implements Port.
func (r *Registry) WriteData(ctx context.Context, connectorType string, config map[string]any, rows []row.Row) error {
	c, ok := r.Get(connectorType)
	if !ok {
		return errors.UnknownConnector(connectorType)
	}
	if err := c.Write(ctx, config, rows); err != nil {
		return errors.ConnectorFailed("write", connectorType, err)
	}
	return nil
}
