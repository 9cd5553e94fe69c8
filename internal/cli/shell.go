package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/fsq/fsq/internal/cliopt"
)

// RunShell starts the interactive prompt. Each line is one query;
// blank lines are ignored.
func RunShell(g cliopt.GlobalOptions) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if g.HistoryFile != "" {
		if f, err := os.Open(g.HistoryFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintln(os.Stdout, `fsq shell. Type a query, "help", or "exit".`)

	ctx := context.Background()
	for {
		text, err := line.Prompt("fsq> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(os.Stdout)
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			break
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		switch strings.ToLower(text) {
		case "exit", "quit", `\q`:
			saveHistory(line, g.HistoryFile)
			return 0
		case "clear", `\c`:
			// ANSI clear screen, cursor home
			fmt.Fprint(os.Stdout, "\033[2J\033[H")
			continue
		case "help", `\h`:
			PrintRootHelp(os.Stdout)
			continue
		}

		runOne(ctx, g, text)
	}

	saveHistory(line, g.HistoryFile)
	return 0
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
