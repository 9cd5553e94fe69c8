// Package field maps query field names and aliases to canonical
// identifiers and value extractors over entity records.
package field

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsq/fsq/fsq/entity"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

// Canonical field sets per target kind, in projection order for '*'.
var (
	dirFields = []string{
		"name", "path", "parent",
		"create_time", "modify_time", "access_time",
		"owner", "group", "permissions",
	}
	fileFields = append(append([]string{}, dirFields...), "size", "filetype")
	dataFields = []string{"name", "path", "filetype", "lineno", "dataline"}
)

var dirAliases = map[string]string{
	"ctime": "create_time",
	"mtime": "modify_time",
	"atime": "access_time",
	"perms": "permissions",
}

var fileAliases = merge(dirAliases, map[string]string{
	"filepath": "path",
	"filename": "name",
	"type":     "filetype",
})

var dataAliases = map[string]string{
	"filename": "name",
	"filepath": "path",
	"data":     "dataline",
	"line":     "dataline",
	"type":     "filetype",
}

func merge(a, b map[string]string) map[string]string {
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Fields returns the canonical field names for a target kind, in the
// order '*' expands to.
func Fields(kind query.TargetKind) []string {
	switch kind {
	case query.KindDir:
		return dirFields
	case query.KindData:
		return dataFields
	default:
		return fileFields
	}
}

// Aliases returns the alias table for a target kind.
func Aliases(kind query.TargetKind) map[string]string {
	switch kind {
	case query.KindDir:
		return dirAliases
	case query.KindData:
		return dataAliases
	default:
		return fileAliases
	}
}

// Canonical resolves a field name or alias, case-insensitively, to
// its canonical identifier for the given target kind.
func Canonical(kind query.TargetKind, name string) (string, error) {
	lower := strings.ToLower(name)
	if alias, ok := Aliases(kind)[lower]; ok {
		lower = alias
	}
	for _, f := range Fields(kind) {
		if f == lower {
			return f, nil
		}
	}
	return "", qerrors.UnknownField(name)
}

// Extract returns the typed value of a canonical field from a record.
// The field must have been validated for the record's kind; unknown
// names here indicate a missing validation pass and yield null.
func Extract(rec *entity.Record, name string) query.Value {
	switch name {
	case "name":
		return query.StringValue(rec.Name)
	case "path":
		return query.StringValue(rec.Path)
	case "parent":
		return query.StringValue(rec.Parent)
	case "size":
		return query.IntValue(rec.Size)
	case "filetype":
		if rec.Filetype == "" {
			return query.NullValue()
		}
		return query.StringValue(rec.Filetype)
	case "create_time":
		return timeValue(rec.CreateTime)
	case "modify_time":
		return timeValue(rec.ModifyTime)
	case "access_time":
		return timeValue(rec.AccessTime)
	case "owner":
		return stringOrNull(rec.Owner)
	case "group":
		return stringOrNull(rec.Group)
	case "permissions":
		return stringOrNull(rec.Permission)
	case "lineno":
		return query.IntValue(rec.Lineno)
	case "dataline":
		return query.StringValue(rec.Dataline)
	default:
		return query.NullValue()
	}
}

// ExtractSized applies the size unit divisor to the raw byte count,
// rounded to five decimal places the way search output presents it.
func ExtractSized(rec *entity.Record, unit string) query.Value {
	divisor, ok := UnitDivisor(unit)
	if !ok {
		return query.NullValue()
	}
	return query.FloatValue(round5(float64(rec.Size) / divisor))
}

func round5(f float64) float64 {
	const shift = 1e5
	if f < 0 {
		return float64(int64(f*shift-0.5)) / shift
	}
	return float64(int64(f*shift+0.5)) / shift
}

func timeValue(t time.Time) query.Value {
	if t.IsZero() {
		return query.NullValue()
	}
	return query.TimeValue(t)
}

func stringOrNull(s string) query.Value {
	if s == "" {
		return query.NullValue()
	}
	return query.StringValue(s)
}

// Validate canonicalizes projection and condition field references in
// place and rejects fields, aliases, or units invalid for the query's
// target kind. It runs after parsing and before any traversal.
func Validate(q *query.Query) error {
	if q.Star {
		q.Projections = q.Projections[:0]
		for _, f := range Fields(q.Target) {
			q.Projections = append(q.Projections, query.Projection{Field: f})
		}
	} else {
		for i, proj := range q.Projections {
			canon, err := Canonical(q.Target, proj.Field)
			if err != nil {
				return err
			}
			if err := checkUnit(canon, proj.Unit); err != nil {
				return err
			}
			q.Projections[i].Field = canon
		}
	}

	if q.Condition == nil {
		return nil
	}
	cond, err := validateExpr(q.Target, q.Condition)
	if err != nil {
		return err
	}
	q.Condition = cond
	return nil
}

func validateExpr(kind query.TargetKind, expr query.Expr) (query.Expr, error) {
	switch e := expr.(type) {
	case query.Logical:
		left, err := validateExpr(kind, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := validateExpr(kind, e.Right)
		if err != nil {
			return nil, err
		}
		return query.Logical{Op: e.Op, Left: left, Right: right}, nil
	case query.Comparison:
		left, err := validateOperand(kind, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := validateOperand(kind, e.Right)
		if err != nil {
			return nil, err
		}
		return query.Comparison{Op: e.Op, Left: left, Right: right}, nil
	default:
		return expr, nil
	}
}

func validateOperand(kind query.TargetKind, op query.Operand) (query.Operand, error) {
	switch o := op.(type) {
	case query.FieldRef:
		canon, err := Canonical(kind, o.Name)
		if err != nil {
			return nil, err
		}
		if err := checkUnit(canon, o.Unit); err != nil {
			return nil, err
		}
		return query.FieldRef{Name: canon, Unit: o.Unit}, nil
	case query.ArrayLit:
		elems := make([]query.Operand, len(o.Elems))
		for i, elem := range o.Elems {
			validated, err := validateOperand(kind, elem)
			if err != nil {
				return nil, err
			}
			elems[i] = validated
		}
		return query.ArrayLit{Elems: elems}, nil
	default:
		return op, nil
	}
}

func checkUnit(canon, unit string) error {
	if unit == "" {
		return nil
	}
	if canon != "size" {
		return qerrors.Semantic(fmt.Sprintf("unit suffix is not valid for field %q", canon))
	}
	if _, ok := UnitDivisor(unit); !ok {
		return qerrors.Semantic(fmt.Sprintf("%q is not a valid unit for the size field", unit))
	}
	return nil
}
