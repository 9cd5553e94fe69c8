// Package eval evaluates a parsed condition tree against one entity
// record. Evaluation is pure: it never mutates the record and yields
// the same boolean for the same (tree, record) pair.
package eval

import (
	"fmt"
	"strconv"

	"github.com/fsq/fsq/fsq/entity"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/field"
	"github.com/fsq/fsq/fsq/query"
)

// Evaluate runs the condition tree against rec. A nil tree matches
// everything.
func Evaluate(expr query.Expr, rec *entity.Record) (bool, error) {
	if expr == nil {
		return true, nil
	}

	switch e := expr.(type) {
	case query.Logical:
		left, err := Evaluate(e.Left, rec)
		if err != nil {
			return false, err
		}
		right, err := Evaluate(e.Right, rec)
		if err != nil {
			return false, err
		}
		if e.Op == query.OpAnd {
			return left && right, nil
		}
		return left || right, nil
	case query.Comparison:
		return compare(e, rec)
	default:
		return false, qerrors.Semantic(fmt.Sprintf("unsupported condition node %T", expr))
	}
}

func compare(cmp query.Comparison, rec *entity.Record) (bool, error) {
	left, err := resolve(cmp.Left, rec)
	if err != nil {
		return false, err
	}

	switch cmp.Op {
	case query.CmpIn:
		return evalIn(left, cmp.Right, rec)
	case query.CmpBetween:
		return evalBetween(left, cmp.Right, rec)
	case query.CmpLike:
		return evalLike(left, cmp.Right)
	}

	right, err := resolve(cmp.Right, rec)
	if err != nil {
		return false, err
	}

	switch cmp.Op {
	case query.CmpEq:
		return equal(left, right)
	case query.CmpNe:
		eq, err := equal(left, right)
		return !eq, err
	default:
		return ordered(cmp.Op, left, right)
	}
}

// resolve turns a scalar operand into its runtime value. Regex and
// array operands have no scalar value and are rejected here; the
// operators that accept them never route through resolve.
func resolve(op query.Operand, rec *entity.Record) (query.Value, error) {
	switch o := op.(type) {
	case query.FieldRef:
		if o.Unit != "" {
			return field.ExtractSized(rec, o.Unit), nil
		}
		return field.Extract(rec, o.Name), nil
	case query.StringLit:
		return query.StringValue(o.Value), nil
	case query.IntLit:
		return query.IntValue(o.Value), nil
	case query.FloatLit:
		return query.FloatValue(o.Value), nil
	case query.NullLit:
		return query.NullValue(), nil
	case query.DateLit:
		return query.TimeValue(o.Value), nil
	case query.RegexLit:
		return query.Value{}, qerrors.TypeMismatch("a pattern operand is only valid with LIKE")
	case query.ArrayLit:
		return query.Value{}, qerrors.TypeMismatch("an array operand is only valid with IN or BETWEEN")
	default:
		return query.Value{}, qerrors.Semantic(fmt.Sprintf("unsupported operand %T", op))
	}
}

// equal applies per-type equality. Null equals only null and
// participates in no ordering.
func equal(l, r query.Value) (bool, error) {
	if l.IsNull() || r.IsNull() {
		return l.IsNull() && r.IsNull(), nil
	}
	if l.IsNumeric() && r.IsNumeric() {
		return l.AsFloat() == r.AsFloat(), nil
	}
	if l.Kind != r.Kind {
		return false, mismatch(l, r)
	}
	switch l.Kind {
	case query.KindString:
		return l.Str == r.Str, nil
	case query.KindTime:
		return l.Time.Equal(r.Time), nil
	default:
		return false, mismatch(l, r)
	}
}

func ordered(op query.CmpOp, l, r query.Value) (bool, error) {
	if l.IsNull() || r.IsNull() {
		return false, qerrors.TypeMismatch("null does not support ordering comparisons")
	}

	var c int
	switch {
	case l.IsNumeric() && r.IsNumeric():
		lf, rf := l.AsFloat(), r.AsFloat()
		switch {
		case lf < rf:
			c = -1
		case lf > rf:
			c = 1
		}
	case l.Kind == query.KindString && r.Kind == query.KindString:
		switch {
		case l.Str < r.Str:
			c = -1
		case l.Str > r.Str:
			c = 1
		}
	case l.Kind == query.KindTime && r.Kind == query.KindTime:
		switch {
		case l.Time.Before(r.Time):
			c = -1
		case l.Time.After(r.Time):
			c = 1
		}
	default:
		return false, mismatch(l, r)
	}

	switch op {
	case query.CmpLt:
		return c < 0, nil
	case query.CmpLe:
		return c <= 0, nil
	case query.CmpGt:
		return c > 0, nil
	case query.CmpGe:
		return c >= 0, nil
	default:
		return false, qerrors.Semantic("unsupported ordering operator")
	}
}

func evalIn(left query.Value, right query.Operand, rec *entity.Record) (bool, error) {
	arr, ok := right.(query.ArrayLit)
	if !ok {
		return false, qerrors.TypeMismatch("IN requires an array right operand")
	}
	for _, elem := range arr.Elems {
		val, err := resolve(elem, rec)
		if err != nil {
			return false, err
		}
		eq, err := equal(left, val)
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}

// evalBetween checks inclusive range membership. The smaller bound is
// the effective lower edge regardless of the order written.
func evalBetween(left query.Value, right query.Operand, rec *entity.Record) (bool, error) {
	arr, ok := right.(query.ArrayLit)
	if !ok || len(arr.Elems) != 2 {
		return false, qerrors.TypeMismatch("BETWEEN requires a two-element array right operand")
	}

	lo, err := resolve(arr.Elems[0], rec)
	if err != nil {
		return false, err
	}
	hi, err := resolve(arr.Elems[1], rec)
	if err != nil {
		return false, err
	}

	swapped, err := ordered(query.CmpGt, lo, hi)
	if err != nil {
		return false, err
	}
	if swapped {
		lo, hi = hi, lo
	}

	geLo, err := ordered(query.CmpGe, left, lo)
	if err != nil {
		return false, err
	}
	if !geLo {
		return false, nil
	}
	return ordered(query.CmpLe, left, hi)
}

// evalLike tests the compiled pattern anywhere in the left operand's
// string form, case-sensitively. Null never matches.
func evalLike(left query.Value, right query.Operand) (bool, error) {
	re, ok := right.(query.RegexLit)
	if !ok {
		return false, qerrors.TypeMismatch("LIKE requires a pattern right operand")
	}
	if left.IsNull() {
		return false, nil
	}
	return re.Re.MatchString(stringForm(left)), nil
}

func stringForm(v query.Value) string {
	switch v.Kind {
	case query.KindString:
		return v.Str
	case query.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case query.KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case query.KindTime:
		return v.Time.Format(query.TimestampLayout)
	default:
		return ""
	}
}

func mismatch(l, r query.Value) error {
	return qerrors.TypeMismatch(fmt.Sprintf("cannot compare %s with %s", l.Kind, r.Kind))
}
