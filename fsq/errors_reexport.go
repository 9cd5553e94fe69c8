package fsq

import qerrors "github.com/fsq/fsq/fsq/errors"

// Re-export the error taxonomy so callers only need the root package.
type Error = qerrors.Error
type ErrorKind = qerrors.ErrorKind

const (
	ErrLex          = qerrors.ErrLex
	ErrSyntax       = qerrors.ErrSyntax
	ErrSemantic     = qerrors.ErrSemantic
	ErrTypeMismatch = qerrors.ErrTypeMismatch
	ErrPath         = qerrors.ErrPath
	ErrAccess       = qerrors.ErrAccess
	ErrDecode       = qerrors.ErrDecode
	ErrExport       = qerrors.ErrExport
)

func IsKind(err error, kind ErrorKind) bool { return qerrors.IsKind(err, kind) }
