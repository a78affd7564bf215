// Package aggregate groups rows and reduces each group with named
// aggregation functions.
//
// Groups are keyed by the ordered tuple of groupBy field values. Output
// order is committed: groups appear in first-seen (insertion) order. With an
// empty groupBy the whole input is one implicit group and the single output
// row carries only the aggregation outputs.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/datalith/flowkit/row"
)

// Aggregation reduces one field of a group into one output field.
type Aggregation struct {
	Field       string `mapstructure:"field"`
	Function    string `mapstructure:"function"`
	OutputField string `mapstructure:"outputField"`
}

type group struct {
	keyFields row.Row
	rows      []row.Row
}

// Aggregate groups rows by the groupBy fields and emits one row per group:
// the group's key field values plus one field per aggregation output.
func Aggregate(rows []row.Row, groupBy []string, aggregations []Aggregation) []row.Row {
	groups := make(map[string]*group)
	var order []string

	if len(groupBy) == 0 {
		groups[""] = &group{keyFields: row.Row{}, rows: rows}
		order = []string{""}
	} else {
		for _, r := range rows {
			key := groupKey(r, groupBy)
			g, ok := groups[key]
			if !ok {
				keyFields := make(row.Row, len(groupBy))
				for _, f := range groupBy {
					keyFields[f] = r[f]
				}
				g = &group{keyFields: keyFields}
				groups[key] = g
				order = append(order, key)
			}
			g.rows = append(g.rows, r)
		}
	}

	out := make([]row.Row, 0, len(order))
	for _, key := range order {
		g := groups[key]
		result := g.keyFields.Clone()
		for _, agg := range aggregations {
			result[agg.OutputField] = apply(agg, g.rows)
		}
		out = append(out, result)
	}
	return out
}

func groupKey(r row.Row, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = row.Text(r[f])
	}
	return strings.Join(parts, "|")
}

// apply reduces one group. count includes null/missing values; every other
// function drops them first.
func apply(agg Aggregation, rows []row.Row) any {
	if agg.Function == "count" {
		return len(rows)
	}

	values := make([]any, 0, len(rows))
	for _, r := range rows {
		if v := r[agg.Field]; !row.IsNull(v) {
			values = append(values, v)
		}
	}

	switch agg.Function {
	case "sum":
		return sum(values)
	case "avg":
		if len(values) == 0 {
			return float64(0)
		}
		return sum(values) / float64(len(values))
	case "min":
		return extremum(values, func(v, best float64) bool { return v < best })
	case "max":
		return extremum(values, func(v, best float64) bool { return v > best })
	case "first":
		if len(values) == 0 {
			return nil
		}
		return values[0]
	case "last":
		if len(values) == 0 {
			return nil
		}
		return values[len(values)-1]
	case "countDistinct":
		distinct := make(map[string]struct{}, len(values))
		for _, v := range values {
			distinct[fmt.Sprintf("%v", v)] = struct{}{}
		}
		return len(distinct)
	}
	return nil
}

func sum(values []any) float64 {
	var total float64
	for _, v := range values {
		total += row.Number(v)
	}
	return total
}

// extremum returns the numeric min or max of the values, nil when empty.
func extremum(values []any, better func(v, best float64) bool) any {
	if len(values) == 0 {
		return nil
	}
	best := row.Number(values[0])
	for _, v := range values[1:] {
		if n := row.Number(v); better(n, best) {
			best = n
		}
	}
	return best
}
