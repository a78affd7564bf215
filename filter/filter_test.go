package filter

import (
	"testing"

	"github.com/datalith/flowkit/row"
)

func cond(field, op string, value any) map[string]any {
	return map[string]any{"field": field, "operator": op, "value": value}
}

func TestApply_Operators(t *testing.T) {
	r := row.Row{"age": 30, "name": "gopher", "nick": nil}

	tests := []struct {
		name string
		cond map[string]any
		want bool
	}{
		{"eq match", cond("age", "eq", 30), true},
		{"eq numeric coercion", cond("age", "eq", 30.0), true},
		{"eq mismatch", cond("age", "eq", 31), false},
		{"neq", cond("age", "neq", 31), true},
		{"gt", cond("age", "gt", 29), true},
		{"gte boundary", cond("age", "gte", 30), true},
		{"lt", cond("age", "lt", 30), false},
		{"lte boundary", cond("age", "lte", 30), true},
		{"contains", cond("name", "contains", "oph"), true},
		{"contains coerces numbers", cond("age", "contains", "0"), true},
		{"startsWith", cond("name", "startsWith", "go"), true},
		{"endsWith", cond("name", "endsWith", "her"), true},
		{"isNull on nil", cond("nick", "isNull", nil), true},
		{"isNull on missing", cond("absent", "isNull", nil), true},
		{"isNotNull", cond("name", "isNotNull", nil), true},
		{"in", cond("age", "in", []any{10, 30}), true},
		{"in miss", cond("age", "in", []any{10, 20}), false},
		{"notIn", cond("age", "notIn", []any{10, 20}), true},
		{"unknown operator is permissive", cond("age", "matches", "x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := map[string]any{"conditions": []any{tt.cond}}
			kept, removed := Apply([]row.Row{r}, config)
			got := len(kept) == 1
			if got != tt.want {
				t.Fatalf("expected match=%v, got kept=%d removed=%d", tt.want, len(kept), removed)
			}
		})
	}
}

func TestApply_AndLogicIsDefault(t *testing.T) {
	rows := []row.Row{
		{"a": 1, "b": 1},
		{"a": 1, "b": 2},
	}
	config := map[string]any{
		"conditions": []any{cond("a", "eq", 1), cond("b", "eq", 1)},
	}
	kept, removed := Apply(rows, config)
	if len(kept) != 1 || removed != 1 {
		t.Fatalf("expected 1 kept / 1 removed, got %d / %d", len(kept), removed)
	}
}

func TestApply_OrLogic(t *testing.T) {
	rows := []row.Row{
		{"a": 1, "b": 9},
		{"a": 9, "b": 2},
		{"a": 9, "b": 9},
	}
	config := map[string]any{
		"logic":      "or",
		"conditions": []any{cond("a", "eq", 1), cond("b", "eq", 2)},
	}
	kept, _ := Apply(rows, config)
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept, got %d", len(kept))
	}
}

func TestApply_NoConditionsKeepsAll(t *testing.T) {
	rows := []row.Row{{"a": 1}, {"a": 2}}
	kept, removed := Apply(rows, map[string]any{})
	if len(kept) != 2 || removed != 0 {
		t.Fatalf("expected all rows kept, got %d / removed %d", len(kept), removed)
	}
}

func TestApply_StringEquality(t *testing.T) {
	rows := []row.Row{{"code": "007"}}
	kept, _ := Apply(rows, map[string]any{"conditions": []any{cond("code", "eq", "007")}})
	if len(kept) != 1 {
		t.Fatal("expected string eq to match exactly")
	}
	kept, _ = Apply(rows, map[string]any{"conditions": []any{cond("code", "eq", "7")}})
	if len(kept) != 0 {
		t.Fatal("string comparison must not coerce numerically")
	}
}
