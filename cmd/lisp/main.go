// Command lisp is the CLI front end for the interpreter: a REPL with no
// arguments, file execution given one, plus lex/parse debug subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/lispcore/cmd/lisp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
