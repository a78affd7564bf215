// Package filter evaluates row-level predicate conditions for filter nodes.
//
// A filter node carries a list of conditions combined with "and" (default)
// or "or" logic. The operator vocabulary is fixed; an unrecognized operator
// evaluates to true so rows are never dropped by configuration typos.
package filter

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/datalith/flowkit/row"
)

// Condition is one field predicate.
type Condition struct {
	Field    string `mapstructure:"field"`
	Operator string `mapstructure:"operator"`
	Value    any    `mapstructure:"value"`
}

// Config is a filter node's configuration.
type Config struct {
	Conditions []Condition `mapstructure:"conditions"`
	Logic      string      `mapstructure:"logic"`
}

// Apply keeps the rows matching the config bag's conditions and reports how
// many were removed.
func Apply(rows []row.Row, config map[string]any) ([]row.Row, int) {
	var cfg Config
	_ = mapstructure.Decode(config, &cfg)

	kept := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		if Matches(r, cfg) {
			kept = append(kept, r)
		}
	}
	return kept, len(rows) - len(kept)
}

// Matches reduces all condition results with the configured logic.
func Matches(r row.Row, cfg Config) bool {
	if len(cfg.Conditions) == 0 {
		return true
	}

	if cfg.Logic == "or" {
		for _, c := range cfg.Conditions {
			if evaluate(r, c) {
				return true
			}
		}
		return false
	}

	for _, c := range cfg.Conditions {
		if !evaluate(r, c) {
			return false
		}
	}
	return true
}

func evaluate(r row.Row, c Condition) bool {
	v := r[c.Field]

	switch c.Operator {
	case "eq":
		return looseEqual(v, c.Value)
	case "neq":
		return !looseEqual(v, c.Value)
	case "gt":
		return row.Number(v) > row.Number(c.Value)
	case "gte":
		return row.Number(v) >= row.Number(c.Value)
	case "lt":
		return row.Number(v) < row.Number(c.Value)
	case "lte":
		return row.Number(v) <= row.Number(c.Value)
	case "contains":
		return strings.Contains(row.Text(v), row.Text(c.Value))
	case "startsWith":
		return strings.HasPrefix(row.Text(v), row.Text(c.Value))
	case "endsWith":
		return strings.HasSuffix(row.Text(v), row.Text(c.Value))
	case "isNull":
		return row.IsNull(v)
	case "isNotNull":
		return !row.IsNull(v)
	case "in":
		return member(v, c.Value)
	case "notIn":
		return !member(v, c.Value)
	}

	// Unrecognized operators are permissive: the row is not dropped.
	return true
}

// member tests array membership. A non-array value has no members.
func member(v, set any) bool {
	items, ok := set.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if looseEqual(v, item) {
			return true
		}
	}
	return false
}

// looseEqual compares numerically when both sides are numbers, so YAML's
// int literals match the float values rows commonly carry. Everything else
// is deep equality.
func looseEqual(a, b any) bool {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	an, aok := row.Numeric(a)
	bn, bok := row.Numeric(b)
	if aok && bok {
		return an == bn
	}
	return reflect.DeepEqual(a, b)
}
