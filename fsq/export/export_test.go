package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsq/fsq/fsq/engine"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Columns: []string{"name", "size"},
		Rows: [][]query.Value{
			{query.StringValue("a.txt"), query.IntValue(5)},
			{query.StringValue("b.log"), query.IntValue(10)},
		},
	}
}

func TestToFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ToFile(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,size", lines[0])
	assert.Equal(t, "a.txt,5", lines[1])
	assert.Equal(t, "b.log,10", lines[2])
}

func TestToFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ToFile(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "a.txt", records[0]["name"])
	assert.Equal(t, float64(5), records[0]["size"])
}

func TestToFileJSONNull(t *testing.T) {
	res := &engine.Result{
		Columns: []string{"owner"},
		Rows:    [][]query.Value{{query.NullValue()}},
	}
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ToFile(res, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Nil(t, records[0]["owner"])
}

func TestToFileHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, ToFile(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<th>name</th>")
	assert.Contains(t, html, "<td>a.txt</td>")
	assert.Contains(t, html, "<td>10</td>")
}

func TestToFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, ToFile(sampleResult(), path))
	assert.FileExists(t, path)
}

func TestToFileRefusesExistingTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := ToFile(sampleResult(), path)
	require.Error(t, err)
	assert.True(t, qerrors.IsKind(err, qerrors.ErrExport))

	// The existing file is untouched.
	data, _ := os.ReadFile(path)
	assert.Equal(t, "old", string(data))
}

func TestToFileRefusesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := ToFile(sampleResult(), path)
	require.Error(t, err)
	assert.True(t, qerrors.IsKind(err, qerrors.ErrExport))
}

func TestToFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	err := ToFile(sampleResult(), path)
	require.Error(t, err)
	assert.True(t, qerrors.IsKind(err, qerrors.ErrExport))
}

func TestToSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	require.NoError(t, ToSQLite(context.Background(), sampleResult(), path, "results"))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT "name", "size" FROM "results" ORDER BY "name"`)
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var name string
		var size int64
		require.NoError(t, rows.Scan(&name, &size))
		got = append(got, name)
		if name == "b.log" {
			assert.Equal(t, int64(10), size)
		}
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a.txt", "b.log"}, got)
}

func TestToSQLiteReplacesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	require.NoError(t, ToSQLite(context.Background(), sampleResult(), path, "results"))

	second := &engine.Result{
		Columns: []string{"name"},
		Rows:    [][]query.Value{{query.StringValue("only.txt")}},
	}
	require.NoError(t, ToSQLite(context.Background(), second, path, "results"))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "results"`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunDispatch(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })

	spec := &query.ExportSpec{Kind: query.ExportFile, Target: "dispatch.csv"}
	require.NoError(t, Run(context.Background(), sampleResult(), spec, SQLOptions{}))
	assert.FileExists(t, filepath.Join(dir, "dispatch.csv"))
}

func TestRunPostgresRequiresDSN(t *testing.T) {
	spec := &query.ExportSpec{Kind: query.ExportSQL, Target: "postgres"}
	err := Run(context.Background(), sampleResult(), spec, SQLOptions{})
	require.Error(t, err)
	assert.True(t, qerrors.IsKind(err, qerrors.ErrExport))
}

func TestRunUnknownSQLTarget(t *testing.T) {
	spec := &query.ExportSpec{Kind: query.ExportSQL, Target: "oracle"}
	err := Run(context.Background(), sampleResult(), spec, SQLOptions{})
	require.Error(t, err)
	assert.True(t, qerrors.IsKind(err, qerrors.ErrExport))
}

func TestColumnTypeInference(t *testing.T) {
	res := &engine.Result{
		Columns: []string{"s", "i", "f", "n"},
		Rows: [][]query.Value{
			{query.StringValue("x"), query.IntValue(1), query.FloatValue(1.5), query.NullValue()},
		},
	}
	assert.Equal(t, "TEXT", columnType(res, 0))
	assert.Equal(t, "INTEGER", columnType(res, 1))
	assert.Equal(t, "REAL", columnType(res, 2))
	assert.Equal(t, "TEXT", columnType(res, 3))
}
