package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/fsq/fsq/fsq/engine"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

// ToSQLite writes the result set into a table of a SQLite database
// file, creating the file as needed and replacing an existing table.
func ToSQLite(ctx context.Context, res *engine.Result, path, table string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return qerrors.Export("cannot open sqlite database", err)
	}
	defer db.Close()

	return writeTable(ctx, db, res, table, sqlitePlaceholder)
}

// ToPostgres writes the result set into a table of a PostgreSQL
// database, replacing an existing table.
func ToPostgres(ctx context.Context, res *engine.Result, dsn, table string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return qerrors.Export("cannot open postgres connection", err)
	}
	defer db.Close()

	return writeTable(ctx, db, res, table, postgresPlaceholder)
}

func sqlitePlaceholder(int) string { return "?" }
func postgresPlaceholder(i int) string { return fmt.Sprintf("$%d", i+1) }

func writeTable(ctx context.Context, db *sql.DB, res *engine.Result, table string, placeholder func(int) string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return qerrors.Export("cannot begin export transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(table))); err != nil {
		return qerrors.Export("cannot replace export table", err)
	}

	cols := make([]string, len(res.Columns))
	marks := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		cols[i] = fmt.Sprintf("%s %s", quoteIdent(col), columnType(res, i))
		marks[i] = placeholder(i)
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(cols, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return qerrors.Export("cannot create export table", err)
	}

	names := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		names[i] = quoteIdent(col)
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "),
	)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return qerrors.Export("cannot prepare export insert", err)
	}
	defer stmt.Close()

	args := make([]any, len(res.Columns))
	for _, row := range res.Rows {
		for i, v := range row {
			args[i] = v.Native()
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return qerrors.Export("cannot insert export row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return qerrors.Export("cannot commit export", err)
	}
	return nil
}

// columnType infers the SQL column type from the first non-null value
// in the column; an all-null column falls back to TEXT.
func columnType(res *engine.Result, col int) string {
	for _, row := range res.Rows {
		switch row[col].Kind {
		case query.KindInt:
			return "INTEGER"
		case query.KindFloat:
			return "REAL"
		case query.KindTime:
			return "TIMESTAMP"
		case query.KindString:
			return "TEXT"
		}
	}
	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
