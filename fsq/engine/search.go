package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsq/fsq/fsq/entity"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/eval"
	"github.com/fsq/fsq/fsq/field"
	"github.com/fsq/fsq/fsq/query"
)

// Search executes a validated search query and returns the projected
// result set. Per-entity failures are collected as warnings; a type
// mismatch in the condition aborts the query.
func Search(ctx context.Context, q *query.Query) (*Result, error) {
	info, err := checkRoot(q)
	if err != nil {
		return nil, err
	}

	r := newRun(ctx, q)
	res := &Result{Columns: columnNames(q)}

	switch q.Target {
	case query.KindData:
		err = r.searchData(res, info)
	case query.KindDir:
		err = r.searchDirs(res, q.Root)
	default:
		err = r.searchFiles(res, q.Root)
	}
	if err != nil {
		return nil, err
	}

	res.Warnings = r.warnings
	return res, nil
}

func columnNames(q *query.Query) []string {
	cols := make([]string, len(q.Projections))
	for i, proj := range q.Projections {
		cols[i] = proj.Field
		if proj.Unit != "" {
			cols[i] = proj.Field + "[" + proj.Unit + "]"
		}
	}
	return cols
}

// searchFiles walks directory entries depth-first in name order and
// projects every matching file.
func (r *run) searchFiles(res *Result, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.warn(dir, qerrors.Access(dir, err))
		return nil
	}

	for _, ent := range entries {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, ent.Name())

		if ent.IsDir() {
			if r.q.Recursive {
				if err := r.searchFiles(res, path); err != nil {
					return err
				}
			}
			continue
		}

		info, err := ent.Info()
		if err != nil {
			r.warn(path, qerrors.Access(path, err))
			continue
		}

		if err := r.collect(res, r.builder.File(path, info)); err != nil {
			return err
		}
	}
	return nil
}

// searchDirs visits subdirectories pre-order. The root itself is not
// a candidate, matching how a directory query enumerates children of
// its root.
func (r *run) searchDirs(res *Result, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.warn(dir, qerrors.Access(dir, err))
		return nil
	}

	for _, ent := range entries {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		if !ent.IsDir() {
			continue
		}
		path := filepath.Join(dir, ent.Name())

		info, err := ent.Info()
		if err != nil {
			r.warn(path, qerrors.Access(path, err))
			continue
		}

		if err := r.collect(res, r.builder.Dir(path, info)); err != nil {
			return err
		}

		if r.q.Recursive {
			if err := r.searchDirs(res, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// collect evaluates the condition for one record and appends the
// projected row on a match.
func (r *run) collect(res *Result, rec *entity.Record) error {
	ok, err := eval.Evaluate(r.q.Condition, rec)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	row := make([]query.Value, len(r.q.Projections))
	for i, proj := range r.q.Projections {
		if proj.Unit != "" {
			row[i] = field.ExtractSized(rec, proj.Unit)
		} else {
			row[i] = field.Extract(rec, proj.Field)
		}
	}
	res.Rows = append(res.Rows, row)
	return nil
}
