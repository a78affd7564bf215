// Package transform implements the row transformation operators dispatched
// by the pipeline engine: map, rename, select, derive, sort, deduplicate,
// flatten, and typecast.
//
// Every operator is pure: it reads its configuration from the node's config
// bag, never mutates input rows, and holds no state between calls. Unknown
// transform types pass data through unchanged.
package transform

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/datalith/flowkit/row"
)

// Operator applies one transformation to a dataset.
type Operator func(rows []row.Row, config map[string]any) []row.Row

var registry = map[string]Operator{
	"map":         applyMap,
	"rename":      applyRename,
	"select":      applySelect,
	"derive":      applyDerive,
	"sort":        applySort,
	"deduplicate": applyDeduplicate,
	"flatten":     applyFlatten,
	"typecast":    applyTypecast,
}

// Apply dispatches rows to the operator registered for transformType.
// An unknown transformType is an explicit no-op, not an error.
func Apply(transformType string, rows []row.Row, config map[string]any) []row.Row {
	op, ok := registry[transformType]
	if !ok {
		return rows
	}
	return op(rows, config)
}

// Registered reports whether a transform type is known.
func Registered(transformType string) bool {
	_, ok := registry[transformType]
	return ok
}

// decode unpacks the node config bag into an operator's typed config.
// Malformed bags decode to the zero config, which every operator treats
// as "nothing to do".
func decode[T any](config map[string]any) T {
	var cfg T
	_ = mapstructure.Decode(config, &cfg)
	return cfg
}
