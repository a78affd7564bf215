// Package row defines the open row model shared by every pipeline operator.
//
// A Row is a JSON-like field map: values are scalars, arrays, or nested
// maps. There is no enforced schema; operators look fields up by name and
// tolerate missing ones.
package row

import (
	"math"

	"github.com/spf13/cast"
)

// Row is one record flowing through a pipeline.
type Row map[string]any

// Clone returns a shallow copy of the row. Operators that modify rows
// clone first; input rows are never mutated.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether the field is present, even if its value is nil.
func (r Row) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// IsNull reports whether a value is null (or a missing field's zero lookup).
func IsNull(v any) bool {
	return v == nil
}

// Number coerces a value to float64 using loose conversion rules.
// Values that cannot be interpreted numerically yield NaN, matching the
// permissive numeric semantics the operators are specified against.
func Number(v any) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Numeric coerces a value to float64 and reports whether the coercion
// produced a real number.
func Numeric(v any) (float64, bool) {
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Text coerces a value to its string form. Nil becomes the empty string.
func Text(v any) string {
	return cast.ToString(v)
}
