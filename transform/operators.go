package transform

import (
	"github.com/datalith/flowkit/expr"
	"github.com/datalith/flowkit/row"
)

// Mapping produces one output field, either from an expression or by
// copying a source field.
type Mapping struct {
	Target     string `mapstructure:"target"`
	Source     string `mapstructure:"source"`
	Expression string `mapstructure:"expression"`
}

type mapConfig struct {
	Mappings []Mapping `mapstructure:"mappings"`
}

// applyMap reshapes each row into a new row containing only the mapping
// targets. Use derive to add fields while keeping the rest of the row.
func applyMap(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[mapConfig](config)
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		mapped := make(row.Row, len(cfg.Mappings))
		for _, m := range cfg.Mappings {
			switch {
			case m.Expression != "":
				mapped[m.Target] = expr.Evaluate(m.Expression, r)
			case r.Has(m.Source):
				mapped[m.Target] = r[m.Source]
			}
		}
		out = append(out, mapped)
	}
	return out
}

// Rename moves a field from one name to another.
type Rename struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

type renameConfig struct {
	Renames []Rename `mapstructure:"renames"`
}

func applyRename(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[renameConfig](config)
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		renamed := r.Clone()
		for _, rn := range cfg.Renames {
			if !renamed.Has(rn.From) {
				continue
			}
			renamed[rn.To] = renamed[rn.From]
			delete(renamed, rn.From)
		}
		out = append(out, renamed)
	}
	return out
}

type selectConfig struct {
	Fields []string `mapstructure:"fields"`
}

// applySelect projects rows down to the listed fields. A listed field
// absent from a row is simply omitted from the output row.
func applySelect(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[selectConfig](config)
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		projected := make(row.Row, len(cfg.Fields))
		for _, f := range cfg.Fields {
			if r.Has(f) {
				projected[f] = r[f]
			}
		}
		out = append(out, projected)
	}
	return out
}

type deriveConfig struct {
	Field      string `mapstructure:"field"`
	Expression string `mapstructure:"expression"`
}

// applyDerive adds or overwrites one field per row with an evaluated
// expression, keeping all existing fields.
func applyDerive(rows []row.Row, config map[string]any) []row.Row {
	cfg := decode[deriveConfig](config)
	out := make([]row.Row, 0, len(rows))
	for _, r := range rows {
		derived := r.Clone()
		derived[cfg.Field] = expr.Evaluate(cfg.Expression, r)
		out = append(out, derived)
	}
	return out
}
