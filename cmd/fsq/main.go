package main

import (
	"os"

	"github.com/fsq/fsq/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
