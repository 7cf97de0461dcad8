package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/lispcore/internal/errors"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
	"github.com/cwbudde/lispcore/internal/repl"
	"github.com/cwbudde/lispcore/internal/vm"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a lisp file, or start the REPL with no file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runScript implements the spec §6 CLI contract: `<binary> [source-file]`.
// With no argument it starts the REPL; given a file, it reads every
// top-level expression and evaluates them in order, stopping and printing
// the first error it hits.
func runScript(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	machine, err := vm.New(os.Stdout, readFile)
	if err != nil {
		return fmt.Errorf("failed to start interpreter: %w", err)
	}

	if len(args) == 0 {
		if verbose {
			fmt.Fprintln(os.Stderr, "starting REPL")
		}
		repl.Run(os.Stdin, os.Stdout, machine)
		return nil
	}

	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "evaluating %s\n", filename)
	}

	runSource(machine, string(source), filename)
	return nil
}

// runSource reads and evaluates one top-level expression at a time rather
// than collecting the whole file's forms before evaluating any of them: a
// parsed-but-not-yet-evaluated expression has no home in the VM's root set
// (spec §4.G's root set covers the stack, globals, and the parser's own
// in-progress builder, not a caller-side batch), so each form is consumed
// into an Eval call before the next one is parsed.
func runSource(machine *vm.VM, source, filename string) {
	p := parser.New(machine.Heap, source, filename)
	machine.SetActiveParser(p)
	defer machine.SetActiveParser(nil)

	for {
		expr, ok, err := p.Next()
		if err != nil {
			printParseError(err, source, filename)
			os.Exit(1)
		}
		if !ok {
			return
		}
		if _, errVal, ok := machine.Eval(expr); !ok {
			printRuntimeError(machine, errVal)
			os.Exit(1)
		}
	}
}

func printParseError(err error, source, filename string) {
	if inc, isInc := err.(parser.ErrIncomplete); isInc {
		se := errors.NewSyntaxError(inc.Pos, "unexpected EOF", source, filename)
		fmt.Fprintln(os.Stderr, se.Format(false))
		return
	}
	if se, ok := err.(*errors.SyntaxError); ok {
		fmt.Fprintln(os.Stderr, se.Format(false))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func printRuntimeError(machine *vm.VM, errVal *object.Object) {
	kind, _ := machine.Errors.KindOf(errVal)
	message, _ := ierrors.Message(errVal)
	traceback, _ := ierrors.Traceback(errVal)
	fmt.Fprintln(os.Stderr, errors.FormatRuntimeError(kind.String(), message, traceback))
}

// readFile backs the `import` primitive; it is the only place the VM-facing
// packages touch the filesystem.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
