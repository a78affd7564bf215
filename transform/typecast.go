package transform

import (
	"math"
	"time"

	"github.com/spf13/cast"

	"github.com/datalith/flowkit/row"
)

// Cast coerces one field to a target type.
type Cast struct {
	Field string `mapstructure:"field"`
	Type  string `mapstructure:"type"`
}

type typecastConfig struct {
	Casts []Cast `mapstructure:"casts"`
}

// applyTypecast coerces fields to string, number, boolean, or date using
// loose conversion. A failed numeric coercion yields NaN and a failed date
// coercion yields the zero time.Time. Sentinel values, not errors.
func applyTypecast(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[typecastConfig](config)
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		casted := r.Clone()
		for _, c := range cfg.Casts {
			if !casted.Has(c.Field) {
				continue
			}
			casted[c.Field] = coerce(casted[c.Field], c.Type)
		}
		out = append(out, casted)
	}
	return out
}

func coerce(v any, target string) any {
	switch target {
	case "string":
		return cast.ToString(v)
	case "number":
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return math.NaN()
		}
		return f
	case "boolean":
		return cast.ToBool(v)
	case "date":
		t, err := cast.ToTimeE(v)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return v
}
