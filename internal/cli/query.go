package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsq/fsq/fsq"
	"github.com/fsq/fsq/fsq/engine"
	"github.com/fsq/fsq/fsq/export"
	"github.com/fsq/fsq/internal/cliopt"
	"github.com/fsq/fsq/internal/logger"
)

func RunQueryCmd(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "parse and print the canonical query without running it")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "missing query text")
		return 2
	}

	if dryRun {
		q, err := fsq.Parse(text)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, q.String())
		return 0
	}

	return runOne(context.Background(), g, text)
}

// runOne executes a single query and prints the outcome. Shared by
// the query command and the shell.
func runOne(ctx context.Context, g cliopt.GlobalOptions, text string) int {
	opts := fsq.Options{
		Export: export.SQLOptions{
			SQLitePath:  g.ExportSQLitePath,
			PostgresDSN: g.ExportPostgresDSN,
			Table:       g.ExportTable,
		},
	}

	start := time.Now()
	out, err := fsq.Run(ctx, text, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	elapsed := time.Since(start)

	switch {
	case out.Delete != nil:
		logWarnings(out.Delete.Warnings)
		fmt.Fprintf(os.Stdout, "Deleted %d entries (%d skipped) in %s\n",
			out.Delete.Removed, out.Delete.Skipped, elapsed.Round(time.Millisecond))
	default:
		logWarnings(out.Search.Warnings)
		PrintSearch(os.Stdout, ParseOutputFormat(g.Format), out.Search, g.RowLimit)
		fmt.Fprintf(os.Stdout, "%d rows in %s\n", len(out.Search.Rows), elapsed.Round(time.Millisecond))
	}
	return 0
}

func logWarnings(warnings []engine.Warning) {
	log := logger.Get()
	for _, w := range warnings {
		log.Warn("skipped entry", "path", w.Path, "error", w.Err)
	}
}
