// Package export serializes a finished search result set to external
// files or relational databases. It consumes the result as an opaque
// tabular structure and is never invoked for delete queries.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsq/fsq/fsq/engine"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

// SQLOptions configures database exports. The export clause names
// only the database flavor; connection details come from the caller.
type SQLOptions struct {
	// SQLitePath is the database file written for a sqlite target.
	SQLitePath string
	// PostgresDSN is the connection string for a postgres target.
	PostgresDSN string
	// Table receives the exported rows. Defaults to "fsq_export".
	Table string
}

func (o SQLOptions) table() string {
	if o.Table == "" {
		return "fsq_export"
	}
	return o.Table
}

// Run dispatches an export spec captured from the query.
func Run(ctx context.Context, res *engine.Result, spec *query.ExportSpec, opts SQLOptions) error {
	if spec == nil {
		return nil
	}
	if spec.Kind == query.ExportFile {
		return ToFile(res, spec.Target)
	}

	switch strings.ToLower(spec.Target) {
	case "sqlite":
		path := opts.SQLitePath
		if path == "" {
			path = "fsq_export.db"
		}
		return ToSQLite(ctx, res, path, opts.table())
	case "postgres", "postgresql":
		if opts.PostgresDSN == "" {
			return qerrors.Export("a postgres export requires a connection string", nil)
		}
		return ToPostgres(ctx, res, opts.PostgresDSN, opts.table())
	default:
		return qerrors.Export(fmt.Sprintf("unsupported SQL export target %q", spec.Target), nil)
	}
}
