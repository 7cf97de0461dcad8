package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/lispcore/internal/errors"
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a lisp file or expression and print the parsed forms",
	Long: `Parse lisp source code and print each top-level form in its
reader-faithful (repr) rendering.

Examples:
  lisp parse script.lisp
  lisp parse -e "(define x (+ 1 2))"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
}

// parserRoots lets the debug `parse` command run against a bare heap (no
// full VM): the parser's own in-progress builder is the only live root a
// one-shot read needs.
type parserRoots struct {
	p *parser.Parser
}

func (r *parserRoots) GCRoots() []*object.Object {
	if r.p == nil {
		return nil
	}
	return r.p.GCRoots()
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	h := heap.New()
	roots := &parserRoots{}
	h.SetRoots(roots)

	p := parser.New(h, input, filename)
	roots.p = p

	for {
		expr, ok, err := p.Next()
		if err != nil {
			if inc, isInc := err.(parser.ErrIncomplete); isInc {
				se := errors.NewSyntaxError(inc.Pos, "unexpected EOF", input, filename)
				fmt.Fprintln(os.Stderr, se.Format(false))
			} else if se, ok := err.(*errors.SyntaxError); ok {
				fmt.Fprintln(os.Stderr, se.Format(false))
			} else {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			os.Exit(1)
		}
		if !ok {
			return nil
		}
		fmt.Println(object.Repr(expr))
	}
}
