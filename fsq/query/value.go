package query

import (
	"strconv"
	"time"
)

// ValueKind discriminates the closed set of runtime value types a
// field or literal can resolve to.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindTime
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a typed runtime value. Exactly one payload field is
// meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Time  time.Time
}

func NullValue() Value            { return Value{Kind: KindNull} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func IntValue(i int64) Value      { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsNumeric reports whether the value participates in numeric
// comparison, where ints and floats are mutually compatible.
func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// AsFloat returns the numeric payload widened to float64.
func (v Value) AsFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// Display renders the value for result tables and exports.
func (v Value) Display() string {
	switch v.Kind {
	case KindNull:
		return "none"
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindTime:
		return v.Time.Format(TimestampLayout)
	default:
		return ""
	}
}

// Native returns the payload as a plain Go value, for encoders that
// take any (JSON export, SQL drivers, spreadsheet cells).
func (v Value) Native() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindTime:
		return v.Time
	default:
		return nil
	}
}

// Layouts accepted for date literals in query text.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// ParseDate interprets s as a date or datetime literal. The second
// return value reports whether s matched either layout.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
