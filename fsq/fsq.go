// Package fsq is a filesystem search engine: it parses SQL-like
// query strings and executes search and delete operations over
// files, directories, and file content lines.
package fsq

import (
	"context"

	"github.com/fsq/fsq/fsq/engine"
	"github.com/fsq/fsq/fsq/export"
	"github.com/fsq/fsq/fsq/field"
	"github.com/fsq/fsq/fsq/query"
)

// Options configures query execution.
type Options struct {
	// Deleter overrides the filesystem delete operations; nil uses
	// the real filesystem.
	Deleter engine.Deleter
	// Export supplies connection details for SQL export targets.
	Export export.SQLOptions
	// SkipExport suppresses the query's export clause, leaving the
	// result set in memory only.
	SkipExport bool
}

// Outcome is the result of one query invocation. Exactly one field
// is set, selected by the query's operation.
type Outcome struct {
	Search *engine.Result
	Delete *engine.DeleteResult
}

// Parse lexes, parses, and semantically validates a query string.
// The returned query carries canonical field names, with '*'
// expanded for the target kind.
func Parse(text string) (*query.Query, error) {
	q, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := field.Validate(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Run parses and executes one query. Search results are exported
// when the query carries an export clause; delete queries report the
// removed and skipped counts.
func Run(ctx context.Context, text string, opts Options) (*Outcome, error) {
	q, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return RunQuery(ctx, q, opts)
}

// RunQuery executes an already-parsed query.
func RunQuery(ctx context.Context, q *query.Query, opts Options) (*Outcome, error) {
	if q.Operation == query.OpDelete {
		res, err := engine.Delete(ctx, q, opts.Deleter)
		if err != nil {
			return nil, err
		}
		return &Outcome{Delete: res}, nil
	}

	res, err := engine.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.Export != nil && !opts.SkipExport {
		if err := export.Run(ctx, res, q.Export, opts.Export); err != nil {
			return nil, err
		}
	}
	return &Outcome{Search: res}, nil
}
