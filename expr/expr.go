// Package expr evaluates the small per-row expression language used by the
// map and derive transform operators.
//
// Supported forms, tried in priority order (first match wins):
//
//	$field              direct field reference
//	$field <op> operand arithmetic with + - * /; operand is $other or a
//	                    numeric literal; division by zero yields 0
//	concat(a, b, ...)   string concatenation of field refs and quoted literals
//	anything else       returned as the literal expression string
package expr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/datalith/flowkit/row"
)

var (
	fieldPattern  = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)$`)
	arithPattern  = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)\s*([+\-*/])\s*(\$[A-Za-z_][A-Za-z0-9_]*|-?[0-9]+(?:\.[0-9]+)?)$`)
	concatPattern = regexp.MustCompile(`^concat\((.*)\)$`)
)

// Evaluate resolves an expression against a row. Only one grammar rule
// applies per expression; expressions matching none are returned verbatim.
func Evaluate(expression string, r row.Row) any {
	expression = strings.TrimSpace(expression)

	if m := fieldPattern.FindStringSubmatch(expression); m != nil {
		return r[m[1]]
	}

	if m := arithPattern.FindStringSubmatch(expression); m != nil {
		return arithmetic(r, m[1], m[2], m[3])
	}

	if m := concatPattern.FindStringSubmatch(expression); m != nil {
		return concat(r, m[1])
	}

	return expression
}

func arithmetic(r row.Row, field, op, operand string) float64 {
	left := row.Number(r[field])

	var right float64
	if strings.HasPrefix(operand, "$") {
		right = row.Number(r[operand[1:]])
	} else {
		right, _ = strconv.ParseFloat(operand, 64)
	}

	switch op {
	case "+":
		return left + right
	case "-":
		return left - right
	case "*":
		return left * right
	case "/":
		if right == 0 {
			return 0
		}
		return left / right
	}
	return 0
}

// concat joins the comma-separated arguments. Arguments are either $field
// references (substituted from the row) or literals with surrounding quote
// characters stripped. Literals containing commas are not supported.
func concat(r row.Row, args string) string {
	var b strings.Builder
	for _, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if strings.HasPrefix(arg, "$") {
			b.WriteString(row.Text(r[arg[1:]]))
			continue
		}
		b.WriteString(strings.Trim(arg, `'"`))
	}
	return b.String()
}
