package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/fsq/fsq/internal/cliopt"
	"github.com/fsq/fsq/internal/logger"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("fsq", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	if err := cliopt.LoadConfig(&g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	logger.Init(logger.Config{Level: g.LogLevel, Format: "text"})

	args := globalFS.Args()
	if len(args) == 0 {
		return RunShell(g)
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "query":
		return RunQueryCmd(g, rest)
	case "shell":
		return RunShell(g)
	case "fields":
		return RunFields(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
