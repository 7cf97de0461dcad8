package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/lispcore/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a lisp file or expression",
	Long: `Tokenize (lex) a lisp program and print the resulting tokens.

Examples:
  lisp lex script.lisp
  lisp lex -e "(+ 1 2)"
  lisp lex --show-pos script.lisp`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok := l.Next()
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return nil
}

func printToken(tok lexer.Token) {
	output := fmt.Sprintf("[%-10s]", tok.Type)
	switch tok.Type {
	case lexer.EOF:
		output += " EOF"
	case lexer.ILLEGAL:
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	default:
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}

// readInput resolves the shared "-e expr, else file arg, else stdin"
// pattern the debug subcommands use (mirrors cmd/dwscript/cmd's run/lex
// input resolution).
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
