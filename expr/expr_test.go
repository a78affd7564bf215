package expr

import (
	"testing"

	"github.com/datalith/flowkit/row"
)

func TestEvaluate_FieldReference(t *testing.T) {
	r := row.Row{"price": 9.5}
	if got := Evaluate("$price", r); got != 9.5 {
		t.Fatalf("expected 9.5, got %v", got)
	}
}

func TestEvaluate_FieldReference_Missing(t *testing.T) {
	if got := Evaluate("$absent", row.Row{}); got != nil {
		t.Fatalf("expected nil for missing field, got %v", got)
	}
}

func TestEvaluate_Arithmetic(t *testing.T) {
	r := row.Row{"a": 10, "b": 4}
	tests := []struct {
		expression string
		want       float64
	}{
		{"$a + $b", 14},
		{"$a - $b", 6},
		{"$a * $b", 40},
		{"$a / $b", 2.5},
		{"$a + 5", 15},
		{"$a * 0.5", 5},
		{"$a - -2", 12},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			if got := Evaluate(tt.expression, r); got != tt.want {
				t.Fatalf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.want)
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	r := row.Row{"a": 10, "zero": 0}
	if got := Evaluate("$a / $zero", r); got != float64(0) {
		t.Fatalf("division by zero must yield 0, got %v", got)
	}
	if got := Evaluate("$a / 0", r); got != float64(0) {
		t.Fatalf("division by literal zero must yield 0, got %v", got)
	}
}

func TestEvaluate_Concat(t *testing.T) {
	r := row.Row{"first": "Ada", "last": "Lovelace"}
	tests := []struct {
		expression string
		want       string
	}{
		{`concat($first, ' ', $last)`, "Ada Lovelace"},
		{`concat("id-", $first)`, "id-Ada"},
		{`concat($first)`, "Ada"},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			if got := Evaluate(tt.expression, r); got != tt.want {
				t.Fatalf("Evaluate(%q) = %v, want %q", tt.expression, got, tt.want)
			}
		})
	}
}

func TestEvaluate_LiteralFallback(t *testing.T) {
	r := row.Row{"a": 1}
	for _, expression := range []string{"hello", "a + b", "$1bad"} {
		if got := Evaluate(expression, r); got != expression {
			t.Fatalf("expected %q to pass through, got %v", expression, got)
		}
	}
}

func TestEvaluate_NonNumericArithmetic(t *testing.T) {
	// NaN propagates through arithmetic on non-numeric fields.
	r := row.Row{"name": "abc"}
	got, ok := Evaluate("$name + 1", r).(float64)
	if !ok || got == got { // NaN is the only float64 where x != x
		t.Fatalf("expected NaN, got %v", got)
	}
}
