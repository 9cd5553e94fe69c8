package query

import (
	"regexp"
	"time"
)

// Operation is the query operation kind.
type Operation int

const (
	OpSearch Operation = iota
	OpDelete
)

func (o Operation) String() string {
	if o == OpDelete {
		return "DELETE"
	}
	return "SELECT"
}

// TargetKind selects which entity shape a query operates on.
type TargetKind int

const (
	KindFile TargetKind = iota
	KindDir
	KindData
)

func (k TargetKind) String() string {
	switch k {
	case KindDir:
		return "DIR"
	case KindData:
		return "DATA"
	default:
		return "FILE"
	}
}

// DataMode selects how file contents are read for data queries.
type DataMode int

const (
	ModeText DataMode = iota
	ModeBytes
)

func (m DataMode) String() string {
	if m == ModeBytes {
		return "BYTES"
	}
	return "TEXT"
}

// PathMode controls whether emitted path fields are absolute.
type PathMode int

const (
	PathRelative PathMode = iota
	PathAbsolute
)

// ExportKind is the export destination class.
type ExportKind int

const (
	ExportFile ExportKind = iota
	ExportSQL
)

func (k ExportKind) String() string {
	if k == ExportSQL {
		return "SQL"
	}
	return "FILE"
}

// ExportSpec is captured from the query and passed through to the
// export collaborator without interpretation.
type ExportSpec struct {
	Kind   ExportKind
	Target string
}

// Projection is one output column. Unit is set only for the size
// field with an explicit unit suffix, e.g. size[KiB].
type Projection struct {
	Field string
	Unit  string
}

// Query is the parse result: one operation over one root path with
// an optional condition tree.
type Query struct {
	Operation   Operation
	Target      TargetKind
	Mode        DataMode
	Export      *ExportSpec
	Recursive   bool
	PathMode    PathMode
	Root        string
	Projections []Projection
	Star        bool // projection list was '*'
	Condition   Expr // nil means match everything
}

// Expr is a node of the condition tree
type Expr interface {
	isExpr()
}

// LogicalOp is a binary boolean connective. AND and OR carry equal
// precedence and associate left to right; only parentheses group.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpOr {
		return "OR"
	}
	return "AND"
}

// Logical combines two subtrees with AND or OR.
type Logical struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
}

func (Logical) isExpr() {}

// CmpOp is a comparison operator.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	CmpIn
	CmpBetween
	CmpLike
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	case CmpIn:
		return "IN"
	case CmpBetween:
		return "BETWEEN"
	case CmpLike:
		return "LIKE"
	default:
		return "?"
	}
}

// Comparison is a condition leaf: <operand> <operator> <operand>.
type Comparison struct {
	Op    CmpOp
	Left  Operand
	Right Operand
}

func (Comparison) isExpr() {}

// Operand is a leaf value in a comparison
type Operand interface {
	isOperand()
}

// FieldRef names an entity field, resolved per record at evaluation
// time. Unit is set only for size with an explicit unit suffix.
type FieldRef struct {
	Name string
	Unit string
}

func (FieldRef) isOperand() {}

type StringLit struct {
	Value string
}

func (StringLit) isOperand() {}

type IntLit struct {
	Value int64
}

func (IntLit) isOperand() {}

type FloatLit struct {
	Value float64
}

func (FloatLit) isOperand() {}

// NullLit is the NONE literal.
type NullLit struct{}

func (NullLit) isOperand() {}

// DateLit holds a date or datetime literal. HasTime records whether
// the literal carried a time-of-day part.
type DateLit struct {
	Value   time.Time
	HasTime bool
}

func (DateLit) isOperand() {}

// RegexLit is a pattern operand, valid only on the right side of LIKE.
type RegexLit struct {
	Pattern string
	Re      *regexp.Regexp
}

func (RegexLit) isOperand() {}

// ArrayLit is an ordered operand sequence, valid only on the right
// side of IN and BETWEEN.
type ArrayLit struct {
	Elems []Operand
}

func (ArrayLit) isOperand() {}
