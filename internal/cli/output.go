package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/fsq/fsq/fsq/engine"
	"github.com/fsq/fsq/fsq/query"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// PrintSearch renders a search result. The pretty form is a padded
// column table; a bare size column is shown humanized (e.g. "4.1 kB")
// while size[unit] keeps its converted numeric value.
func PrintSearch(w io.Writer, format OutputFormat, res *engine.Result, rowLimit int) {
	if format == FormatJSON {
		rows := make([]map[string]any, 0, len(res.Rows))
		for _, row := range res.Rows {
			m := make(map[string]any, len(res.Columns))
			for i, col := range res.Columns {
				m[col] = row[i].Native()
			}
			rows = append(rows, m)
		}
		PrintJSON(w, rows)
		return
	}

	shown := res.Rows
	truncated := 0
	if rowLimit > 0 && len(shown) > rowLimit {
		truncated = len(shown) - rowLimit
		shown = shown[:rowLimit]
	}

	cells := make([][]string, 0, len(shown)+1)
	cells = append(cells, res.Columns)
	for _, row := range shown {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = renderCell(res.Columns[i], v)
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(res.Columns))
	for _, line := range cells {
		for i, c := range line {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	for n, line := range cells {
		parts := make([]string, len(line))
		for i, c := range line {
			parts[i] = pad(c, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
		if n == 0 {
			rule := make([]string, len(widths))
			for i, width := range widths {
				rule[i] = strings.Repeat("-", width)
			}
			fmt.Fprintln(w, strings.Join(rule, "  "))
		}
	}
	if truncated > 0 {
		fmt.Fprintf(w, "... %d more rows (raise --row-limit to see them)\n", truncated)
	}
}

func renderCell(column string, v query.Value) string {
	if column == "size" && v.Kind == query.KindInt {
		return humanize.Bytes(uint64(v.Int))
	}
	return v.Display()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
