package engine

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

// searchData enumerates data-line records: the lines of the root file
// itself, or of every file under the root directory. A file that is
// not valid UTF-8 under text mode is reported and skipped; bytes mode
// never fails on content.
func (r *run) searchData(res *Result, rootInfo os.FileInfo) error {
	var files []string
	if rootInfo.IsDir() {
		r.listFiles(&files, r.q.Root)
	} else {
		files = []string{r.q.Root}
	}

	for _, path := range files {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		if err := r.searchFileData(res, path); err != nil {
			return err
		}
	}
	return nil
}

// listFiles gathers candidate file paths in traversal order,
// honoring the recursion flag.
func (r *run) listFiles(files *[]string, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.warn(dir, qerrors.Access(dir, err))
		return
	}
	for _, ent := range entries {
		path := filepath.Join(dir, ent.Name())
		if ent.IsDir() {
			if r.q.Recursive {
				r.listFiles(files, path)
			}
			continue
		}
		*files = append(*files, path)
	}
}

func (r *run) searchFileData(res *Result, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		r.warn(path, qerrors.Access(path, err))
		return nil
	}

	if r.q.Mode == query.ModeText && !utf8.Valid(data) {
		r.warn(path, qerrors.Decode(path, "file is not valid UTF-8 under TEXT mode"))
		return nil
	}

	for i, line := range splitLines(data) {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		rec := r.builder.DataLine(path, int64(i+1), line)
		if err := r.collect(res, rec); err != nil {
			return err
		}
	}
	return nil
}

// splitLines splits on newline bytes, dropping line terminators and
// the empty trailing segment a final newline produces.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
