// Package filterset contains the pure filter state logic for the contact
// list: typed per-column filter values, the three layers (pending, applied,
// forced) and the reconciliation that merges them into one effective query.
package filterset

import (
	"sort"
	"strings"
)

// Kind classifies a column's filter value shape.
type Kind string

// Filter value kinds.
const (
	KindText      Kind = "text"
	KindMulti     Kind = "multi"
	KindDateRange Kind = "range"
)

// Value is the tagged union of the three filter shapes a column can carry:
// free text, multi-select membership, or a date range. Exactly the fields of
// the active Kind are meaningful.
type Value struct {
	Kind   Kind
	Text   string
	Values []string
	From   string
	To     string
}

// TextValue builds a free-text filter value.
func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

// MultiValue builds a multi-select filter value.
func MultiValue(values ...string) Value {
	return Value{Kind: KindMulti, Values: values}
}

// DateRangeValue builds a date-range filter value. A range counts as set if
// either bound is non-empty.
func DateRangeValue(from, to string) Value {
	return Value{Kind: KindDateRange, From: from, To: to}
}

// IsSet reports whether the value carries an actual constraint.
func (v Value) IsSet() bool {
	switch v.Kind {
	case KindText:
		return strings.TrimSpace(v.Text) != ""
	case KindMulti:
		return len(v.Values) > 0
	case KindDateRange:
		return v.From != "" || v.To != ""
	}
	return false
}

// Equal compares two values ignoring multi-select element order.
func (v Value) Equal(o Value) bool {
	return v.signature() == o.signature()
}

// signature returns a stable serialization of the value. Multi-select
// elements are sorted first so element order never produces a distinct
// signature.
func (v Value) signature() string {
	switch v.Kind {
	case KindMulti:
		sorted := make([]string, len(v.Values))
		copy(sorted, v.Values)
		sort.Strings(sorted)
		return "multi:" + strings.Join(sorted, "\x1f")
	case KindDateRange:
		return "range:" + v.From + "\x1f" + v.To
	default:
		return "text:" + v.Text
	}
}

func (v Value) clone() Value {
	if v.Values != nil {
		vs := make([]string, len(v.Values))
		copy(vs, v.Values)
		v.Values = vs
	}
	return v
}
