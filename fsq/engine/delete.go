package engine

import (
	"context"
	"os"
	"path/filepath"

	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/eval"
	"github.com/fsq/fsq/fsq/query"
)

// Delete executes a validated delete query. Matching files are
// unlinked; a matching directory is removed together with its whole
// subtree, and its children are not visited afterwards. Failures on
// individual entities are reported and skipped; completed deletions
// are never rolled back.
func Delete(ctx context.Context, q *query.Query, del Deleter) (*DeleteResult, error) {
	if _, err := checkRoot(q); err != nil {
		return nil, err
	}
	if del == nil {
		del = OSDeleter()
	}

	r := newRun(ctx, q)
	res := &DeleteResult{}

	var err error
	if q.Target == query.KindDir {
		err = r.deleteDirs(res, del, q.Root)
	} else {
		err = r.deleteFiles(res, del, q.Root)
	}
	if err != nil {
		return nil, err
	}

	res.Warnings = r.warnings
	return res, nil
}

func (r *run) deleteFiles(res *DeleteResult, del Deleter, dir string) error {
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
				if err := r.deleteFiles(res, del, path); err != nil {
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

		ok, err := eval.Evaluate(r.q.Condition, r.builder.File(path, info))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if err := del.Remove(path); err != nil {
			r.warn(path, qerrors.Access(path, err))
			res.Skipped++
			continue
		}
		res.Removed++
	}
	return nil
}

// deleteDirs checks each subdirectory before descending. A match
// removes the whole subtree regardless of the recursion flag, so the
// removed directory's children are never re-evaluated.
func (r *run) deleteDirs(res *DeleteResult, del Deleter, dir string) error {
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

		ok, err := eval.Evaluate(r.q.Condition, r.builder.Dir(path, info))
		if err != nil {
			return err
		}

		if ok {
			if err := del.RemoveAll(path); err != nil {
				r.warn(path, qerrors.Access(path, err))
				res.Skipped++
			} else {
				res.Removed++
			}
			continue
		}

		if r.q.Recursive {
			if err := r.deleteDirs(res, del, path); err != nil {
				return err
			}
		}
	}
	return nil
}
