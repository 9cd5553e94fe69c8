package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `fsq — SQL-like search and delete queries over the filesystem

USAGE
  fsq [global flags] <command> [args]

GLOBAL FLAGS
  --format pretty|json
  --row-limit <n>
  --log-level DEBUG|INFO|WARN|ERROR
  --history-file <path>
  --export-sqlite <file.db>
  --export-table <name>
  --export-pg-dsn <dsn>

COMMANDS
  query <text>     run a single query and print the result
  shell            interactive prompt (default when no command given)
  fields [kind]    list queryable fields and their aliases
  help             show this help

QUERY LANGUAGE
  [EXPORT FILE[out.csv]|SQL[sqlite]] [R] SELECT[TYPE FILE|DIR|DATA, MODE TEXT|BYTES]
      <fields|*> FROM [RELATIVE|ABSOLUTE] <path> [WHERE <condition>]
  [R] DELETE[TYPE FILE|DIR] * FROM <path> [WHERE <condition>]

Run "fsq query '<text>'" with the query quoted for your shell.`)
}
