package query

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the query in canonical text form. Parsing the
// rendered text yields an equivalent Query: same operation, target
// kind, path, projections and condition tree shape.
func (q *Query) String() string {
	var sb strings.Builder

	if q.Export != nil {
		fmt.Fprintf(&sb, "EXPORT %s[%s] ", q.Export.Kind, quoteIfNeeded(q.Export.Target))
	}
	if q.Recursive {
		sb.WriteString("R ")
	}

	sb.WriteString(q.Operation.String())
	sb.WriteString("[TYPE ")
	sb.WriteString(q.Target.String())
	if q.Target == KindData {
		sb.WriteString(", MODE ")
		sb.WriteString(q.Mode.String())
	}
	sb.WriteString("]")

	if q.Operation == OpSearch {
		sb.WriteString(" ")
		if q.Star {
			sb.WriteString("*")
		} else {
			for i, proj := range q.Projections {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(proj.Field)
				if proj.Unit != "" {
					fmt.Fprintf(&sb, "[%s]", proj.Unit)
				}
			}
		}
	}

	sb.WriteString(" FROM ")
	if q.PathMode == PathAbsolute {
		sb.WriteString("ABSOLUTE ")
	}
	sb.WriteString(quoteIfNeeded(q.Root))

	if q.Condition != nil {
		sb.WriteString(" WHERE ")
		writeExpr(&sb, q.Condition, false)
	}

	return sb.String()
}

// writeExpr serializes a condition subtree. Nested logical nodes are
// parenthesized so the flat left-to-right connective precedence
// reconstructs the identical tree shape on re-parse.
func writeExpr(sb *strings.Builder, expr Expr, nested bool) {
	switch e := expr.(type) {
	case Logical:
		if nested {
			sb.WriteString("(")
		}
		writeExpr(sb, e.Left, true)
		fmt.Fprintf(sb, " %s ", e.Op)
		writeExpr(sb, e.Right, true)
		if nested {
			sb.WriteString(")")
		}
	case Comparison:
		writeOperand(sb, e.Left)
		fmt.Fprintf(sb, " %s ", e.Op)
		writeOperand(sb, e.Right)
	}
}

func writeOperand(sb *strings.Builder, op Operand) {
	switch o := op.(type) {
	case FieldRef:
		sb.WriteString(o.Name)
		if o.Unit != "" {
			fmt.Fprintf(sb, "[%s]", o.Unit)
		}
	case StringLit:
		sb.WriteString(quote(o.Value))
	case IntLit:
		sb.WriteString(strconv.FormatInt(o.Value, 10))
	case FloatLit:
		sb.WriteString(strconv.FormatFloat(o.Value, 'f', -1, 64))
	case NullLit:
		sb.WriteString("NONE")
	case DateLit:
		layout := DateLayout
		if o.HasTime {
			layout = TimestampLayout
		}
		sb.WriteString(quote(o.Value.Format(layout)))
	case RegexLit:
		sb.WriteString(quote(o.Pattern))
	case ArrayLit:
		sb.WriteString("(")
		for i, elem := range o.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeOperand(sb, elem)
		}
		sb.WriteString(")")
	}
}

// quote wraps s in whichever quote character s does not contain.
func quote(s string) string {
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

func quoteIfNeeded(s string) string {
	for _, r := range s {
		if !isWordChar(r) {
			return quote(s)
		}
	}
	if s == "" {
		return `""`
	}
	return s
}
