// Command lexctl is a thin command-line front end over a flexrt
// ruleset: it loads a YAML ruleset, drives a scanner over an input
// file, and reports what happened. It lives outside internal/lexer
// because the core scanner never touches the filesystem or a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/coalmine/flexrt/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
