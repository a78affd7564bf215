package connector

import (
	"context"
	"testing"

	apperrors "github.com/datalith/flowkit/errors"
	"github.com/datalith/flowkit/row"
)

func staticRows(n int) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{"i": i}
	}
	return rows
}

func TestStatic_Fetch(t *testing.T) {
	s := NewStatic()
	rows, err := s.Fetch(context.Background(), map[string]any{"rows": staticRows(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 || rows[1]["i"] != 1 {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestStatic_SampleIsCapped(t *testing.T) {
	s := NewStatic()
	rows, err := s.Sample(context.Background(), map[string]any{"rows": staticRows(25)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != sampleLimit {
		t.Fatalf("expected %d sample rows, got %d", sampleLimit, len(rows))
	}
}

func TestStatic_WriteBuffers(t *testing.T) {
	s := NewStatic()
	in := []row.Row{{"a": 1}, {"a": 2}}
	if err := s.Write(context.Background(), nil, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Written(); len(got) != 2 {
		t.Fatalf("expected 2 buffered rows, got %d", len(got))
	}
}

func TestRegistry_RoutesByType(t *testing.T) {
	r := NewRegistry()
	r.Register("static", NewStatic())

	rows, err := r.FetchData(context.Background(), "static", map[string]any{"rows": staticRows(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestRegistry_UnknownConnector(t *testing.T) {
	r := NewRegistry()
	_, err := r.FetchData(context.Background(), "postgres", nil)
	if err == nil {
		t.Fatal("expected error for unregistered connector")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeUnknownConnector {
		t.Fatalf("expected UNKNOWN_CONNECTOR, got %v", apperrors.CodeOf(err))
	}
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	r.Register("b", NewStatic())
	r.Register("a", NewStatic())
	got := r.List()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected sorted list, got %v", got)
	}
}
