package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lisp [file]",
	Short: "A small Lisp-style expression-language interpreter",
	Long: `lisp is a tree-walking interpreter for a small, dynamically-typed
Lisp expression language: integers, strings, symbols, cons-lists, dicts,
closures, macros, and tail-recursive control flow over an explicit
evaluation stack.

With no arguments it starts a REPL (` + "`>>> `" + ` / ` + "`... `" + ` prompts). Given a
file, it reads every top-level expression and evaluates them in order.`,
	Args:    cobra.MaximumNArgs(1),
	Version: Version,
	RunE:    runScript,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
