package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorKind string

const (
	ErrLex          ErrorKind = "lex"
	ErrSyntax       ErrorKind = "syntax"
	ErrSemantic     ErrorKind = "semantic"
	ErrTypeMismatch ErrorKind = "type_mismatch"
	ErrPath         ErrorKind = "path"
	ErrAccess       ErrorKind = "access"
	ErrDecode       ErrorKind = "decode"
	ErrExport       ErrorKind = "export"
)

// Error is the unified error type for query parsing and execution.
// Pos is a byte offset into the original query text and is only
// meaningful for lex and syntax errors.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     int
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Pos > 0 {
		base = fmt.Sprintf("%s (offset=%d)", base, e.Pos)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func Lex(pos int, msg string) *Error {
	return &Error{Kind: ErrLex, Message: msg, Pos: pos}
}

func Syntax(pos int, msg string) *Error {
	return &Error{Kind: ErrSyntax, Message: msg, Pos: pos}
}

func Semantic(msg string) *Error {
	return &Error{Kind: ErrSemantic, Message: msg}
}

func UnknownField(field string) *Error {
	return &Error{Kind: ErrSemantic, Message: "unknown field", Field: field}
}

func TypeMismatch(msg string) *Error {
	return &Error{Kind: ErrTypeMismatch, Message: msg}
}

func Path(msg string, cause error) *Error {
	return &Error{Kind: ErrPath, Message: msg, Cause: cause}
}

func Access(path string, cause error) *Error {
	return &Error{Kind: ErrAccess, Message: fmt.Sprintf("cannot access %q", path), Cause: cause}
}

func Decode(path string, msg string) *Error {
	return &Error{Kind: ErrDecode, Message: fmt.Sprintf("%s: %q", msg, path)}
}

func Export(msg string, cause error) *Error {
	return &Error{Kind: ErrExport, Message: msg, Cause: cause}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
