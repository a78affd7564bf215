package aggregate

import (
	"testing"

	"github.com/datalith/flowkit/row"
)

func TestAggregate_GroupedSum(t *testing.T) {
	rows := []row.Row{
		{"g": "x", "v": 1},
		{"g": "x", "v": 3},
		{"g": "y", "v": 10},
	}
	out := Aggregate(rows, []string{"g"}, []Aggregation{
		{Field: "v", Function: "sum", OutputField: "total"},
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out))
	}
	// Group order is committed: first-seen insertion order.
	if out[0]["g"] != "x" || out[0]["total"] != 4.0 {
		t.Errorf("unexpected first group: %v", out[0])
	}
	if out[1]["g"] != "y" || out[1]["total"] != 10.0 {
		t.Errorf("unexpected second group: %v", out[1])
	}
}

func TestAggregate_ImplicitGroup(t *testing.T) {
	rows := []row.Row{{"v": 1}, {"v": 2}}
	out := Aggregate(rows, nil, []Aggregation{
		{Field: "v", Function: "count", OutputField: "n"},
	})
	if len(out) != 1 {
		t.Fatalf("empty groupBy must yield one row, got %d", len(out))
	}
	if len(out[0]) != 1 || out[0]["n"] != 2 {
		t.Fatalf("implicit group row must carry only aggregation outputs: %v", out[0])
	}
}

func TestAggregate_CountIncludesNulls(t *testing.T) {
	rows := []row.Row{{"v": 1}, {"v": nil}, {}}
	out := Aggregate(rows, nil, []Aggregation{
		{Field: "v", Function: "count", OutputField: "n"},
		{Field: "v", Function: "sum", OutputField: "total"},
	})
	if out[0]["n"] != 3 {
		t.Errorf("count must include null/missing values, got %v", out[0]["n"])
	}
	if out[0]["total"] != 1.0 {
		t.Errorf("sum must drop null/missing values, got %v", out[0]["total"])
	}
}

func TestAggregate_Functions(t *testing.T) {
	rows := []row.Row{
		{"v": 4}, {"v": 2}, {"v": 2}, {"v": 8},
	}
	out := Aggregate(rows, nil, []Aggregation{
		{Field: "v", Function: "avg", OutputField: "avg"},
		{Field: "v", Function: "min", OutputField: "min"},
		{Field: "v", Function: "max", OutputField: "max"},
		{Field: "v", Function: "first", OutputField: "first"},
		{Field: "v", Function: "last", OutputField: "last"},
		{Field: "v", Function: "countDistinct", OutputField: "distinct"},
	})

	r := out[0]
	if r["avg"] != 4.0 {
		t.Errorf("avg: got %v", r["avg"])
	}
	if r["min"] != 2.0 {
		t.Errorf("min: got %v", r["min"])
	}
	if r["max"] != 8.0 {
		t.Errorf("max: got %v", r["max"])
	}
	if r["first"] != 4 {
		t.Errorf("first: got %v", r["first"])
	}
	if r["last"] != 8 {
		t.Errorf("last: got %v", r["last"])
	}
	if r["distinct"] != 3 {
		t.Errorf("countDistinct: got %v", r["distinct"])
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	out := Aggregate(nil, nil, []Aggregation{
		{Field: "v", Function: "avg", OutputField: "avg"},
		{Field: "v", Function: "sum", OutputField: "sum"},
		{Field: "v", Function: "min", OutputField: "min"},
		{Field: "v", Function: "first", OutputField: "first"},
	})
	if len(out) != 1 {
		t.Fatalf("implicit group over empty input must still yield one row, got %d", len(out))
	}
	r := out[0]
	if r["avg"] != 0.0 {
		t.Errorf("avg over empty group must be 0, got %v", r["avg"])
	}
	if r["sum"] != 0.0 {
		t.Errorf("sum over empty group must be 0, got %v", r["sum"])
	}
	if r["min"] != nil {
		t.Errorf("min over empty group must be nil, got %v", r["min"])
	}
	if r["first"] != nil {
		t.Errorf("first over empty group must be nil, got %v", r["first"])
	}
}

func TestAggregate_CompositeGroupKey(t *testing.T) {
	rows := []row.Row{
		{"a": 1, "b": "x", "v": 1},
		{"a": 1, "b": "y", "v": 2},
		{"a": 1, "b": "x", "v": 3},
	}
	out := Aggregate(rows, []string{"a", "b"}, []Aggregation{
		{Field: "v", Function: "sum", OutputField: "total"},
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(out), out)
	}
	if out[0]["a"] != 1 || out[0]["b"] != "x" || out[0]["total"] != 4.0 {
		t.Errorf("unexpected group row: %v", out[0])
	}
}

func TestAggregate_UnknownFunctionYieldsNil(t *testing.T) {
	rows := []row.Row{{"v": 1}}
	out := Aggregate(rows, nil, []Aggregation{
		{Field: "v", Function: "median", OutputField: "m"},
	})
	if out[0]["m"] != nil {
		t.Fatalf("unknown function must yield nil, got %v", out[0]["m"])
	}
}
