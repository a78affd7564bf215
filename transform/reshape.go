package transform

import (
	"sort"
	"strings"

	"github.com/datalith/flowkit/row"
)

// SortKey orders rows by one field; Direction "desc" reverses that key only.
type SortKey struct {
	Field     string `mapstructure:"field"`
	Direction string `mapstructure:"direction"`
}

type sortConfig struct {
	SortBy []SortKey `mapstructure:"sortBy"`
}

// applySort is a stable multi-key sort: the first key that differs decides,
// and rows equal on all keys keep their input order.
func applySort(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[sortConfig](config)
	out := make([]row.Row, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range cfg.SortBy {
			c := compareValues(out[i][key.Field], out[j][key.Field])
			if key.Direction == "desc" {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

// compareValues orders two field values: numerically when both coerce to
// real numbers, lexically on their string forms otherwise.
func compareValues(a, b any) int {
	an, aok := row.Numeric(a)
	bn, bok := row.Numeric(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(row.Text(a), row.Text(b))
}

type deduplicateConfig struct {
	Keys []string `mapstructure:"keys"`
}

// applyDeduplicate keeps the first row seen for each composite key and
// drops later duplicates.
func applyDeduplicate(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[deduplicateConfig](config)
	seen := make(map[string]struct{}, len(rows))
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		key := compositeKey(r, cfg.Keys)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// compositeKey joins the named field values into a single grouping key.
func compositeKey(r row.Row, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = row.Text(r[f])
	}
	return strings.Join(parts, "|")
}

type flattenConfig struct {
	Field  string `mapstructure:"field"`
	Prefix string `mapstructure:"prefix"`
}

// applyFlatten explodes rows whose field holds an array: one output row per
// element, the element stored at prefix+field, merged with the parent row's
// other fields. Rows whose field is not an array pass through unchanged.
func applyFlatten(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[flattenConfig](config)
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		items, ok := r[cfg.Field].([]any)
		if !ok {
			out = append(out, r)
			continue
		}
		for _, item := range items {
			exploded := r.Clone()
			delete(exploded, cfg.Field)
			exploded[cfg.Prefix+cfg.Field] = item
			out = append(out, exploded)
		}
	}
	return out
}
