// Package engine walks the filesystem for one parsed query, applies
// the condition tree per entity, and either collects projected rows
// or removes matching entries. The engine is stateless between
// queries and holds no locks; the filesystem is its only shared
// resource.
package engine

import (
	"context"
	"os"

	"github.com/fsq/fsq/fsq/entity"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

// Deleter abstracts the filesystem delete operations so tests can
// substitute a recording implementation and prove what was removed.
type Deleter interface {
	Remove(path string) error
	RemoveAll(path string) error
}

type osDeleter struct{}

func (osDeleter) Remove(path string) error    { return os.Remove(path) }
func (osDeleter) RemoveAll(path string) error { return os.RemoveAll(path) }

// OSDeleter returns the Deleter backed by the real filesystem.
func OSDeleter() Deleter { return osDeleter{} }

// Warning records a per-entity failure that was skipped rather than
// aborting the query.
type Warning struct {
	Path string
	Err  error
}

// Result is the outcome of a search query: an immutable ordered
// tabular structure handed to the caller or an export collaborator.
type Result struct {
	Columns  []string
	Rows     [][]query.Value
	Warnings []Warning
}

// DeleteResult is the outcome of a delete query. Deletions already
// performed are not rolled back when later entities fail.
type DeleteResult struct {
	Removed  int
	Skipped  int
	Warnings []Warning
}

// run carries the per-query traversal state.
type run struct {
	ctx      context.Context
	q        *query.Query
	builder  *entity.Builder
	warnings []Warning
}

func newRun(ctx context.Context, q *query.Query) *run {
	return &run{
		ctx:     ctx,
		q:       q,
		builder: entity.NewBuilder(q.PathMode == query.PathAbsolute),
	}
}

func (r *run) warn(path string, err error) {
	r.warnings = append(r.warnings, Warning{Path: path, Err: err})
}

// checkRoot validates the root path before any side effect. A data
// query accepts a file or directory root; file and directory queries
// require a directory.
func checkRoot(q *query.Query) (os.FileInfo, error) {
	info, err := os.Stat(q.Root)
	if err != nil {
		return nil, qerrors.Path("cannot resolve the query root path", err)
	}
	if q.Target != query.KindData && !info.IsDir() {
		return nil, qerrors.Path("the query root path must be a directory", nil)
	}
	return info, nil
}
