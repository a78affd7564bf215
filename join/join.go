// Package join combines two named datasets on configured key fields with
// inner, left, right, or full-outer semantics.
//
// Key equality is exact value equality with no type coercion across the
// join boundary. The implementation is a nested loop, O(|left|*|right|) per
// node. Fine for typical row volumes; a known scaling limit beyond that.
package join

import (
	"reflect"

	"github.com/datalith/flowkit/row"
)

// Type selects the join semantics.
type Type string

const (
	Inner Type = "inner"
	Left  Type = "left"
	Right Type = "right"
	Full  Type = "full"
)

// Join pairs left and right rows whose key fields are equal. On matched
// pairs the right row's fields overwrite the left's (reversed for right
// joins). Outer variants emit unmatched rows as-is.
func Join(left, right []row.Row, leftKey, rightKey string, typ Type) []row.Row {
	switch typ {
	case Left, Inner, "":
		return leftPass(left, right, leftKey, rightKey, typ == Left, nil)
	case Right:
		return rightJoin(left, right, leftKey, rightKey)
	case Full:
		return fullJoin(left, right, leftKey, rightKey)
	}
	return leftPass(left, right, leftKey, rightKey, false, nil)
}

// leftPass implements inner and left joins. When matchedRight is non-nil it
// records the right-row indices that found a partner, for the full join.
func leftPass(left, right []row.Row, leftKey, rightKey string, outer bool, matchedRight map[int]struct{}) []row.Row {
	var out []row.Row
	for _, l := range left {
		matched := false
		for i, r := range right {
			if !keysEqual(l[leftKey], r[rightKey]) {
				continue
			}
			matched = true
			if matchedRight != nil {
				matchedRight[i] = struct{}{}
			}
			out = append(out, merge(l, r))
		}
		if !matched && outer {
			out = append(out, l.Clone())
		}
	}
	return out
}

func rightJoin(left, right []row.Row, leftKey, rightKey string) []row.Row {
	var out []row.Row
	for _, r := range right {
		matched := false
		for _, l := range left {
			if !keysEqual(l[leftKey], r[rightKey]) {
				continue
			}
			matched = true
			out = append(out, merge(r, l))
		}
		if !matched {
			out = append(out, r.Clone())
		}
	}
	return out
}

// fullJoin is a left join plus the right rows no left row matched.
func fullJoin(left, right []row.Row, leftKey, rightKey string) []row.Row {
	matchedRight := make(map[int]struct{})
	out := leftPass(left, right, leftKey, rightKey, true, matchedRight)
	for i, r := range right {
		if _, ok := matchedRight[i]; !ok {
			out = append(out, r.Clone())
		}
	}
	return out
}

// merge clones base and overlays overlay's fields on top of it.
func merge(base, overlay row.Row) row.Row {
	out := base.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

func keysEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}
