package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gocalc/pkg/compiler"
)

var (
	dumpTokens bool
	dumpAST    bool

	// diagOut receives everything compileSource prints: dumps, diagnostics,
	// and the summary lines. Tests point it at a buffer; real runs write to
	// stderr.
	diagOut io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "calc [expression]",
	Short: "calc - a compiler for arithmetic expressions",
	Long: `calc compiles a single arithmetic expression to an LLVM IR unit on
stdout. Variables are declared up front with the "with" keyword and are
read at run time through the calc_read primitive; the result goes to
calc_write.

Examples:
  calc "1 + 2*3"
  calc "with a, b: a*b - a/b"
  calc run "with a: a*a"
  calc run --inputs values.toml "with a, b: a+b"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ir, ok := compileSource(args[0])
		if !ok {
			os.Exit(1)
		}
		fmt.Print(ir)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream to stderr")
	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the syntax tree to stderr")
}

// compileSource runs the front end over src with the standard diagnostic
// gating: parse diagnostics and their summary line first, then checker
// diagnostics and theirs. Code generation only runs when both phases are
// clean. All diagnostics go to diagOut; stdout stays reserved for the IR.
func compileSource(src string) (string, bool) {
	if dumpTokens {
		for _, tok := range compiler.Lex(src) {
			fmt.Fprintln(diagOut, " ", tok)
		}
	}

	p := compiler.NewParser(compiler.NewLexer(src))
	tree := p.Parse()
	if tree == nil || p.HasError() {
		for _, err := range p.Errors() {
			fmt.Fprintln(diagOut, err)
		}
		// Spelling is load-bearing: callers match on this exact line.
		fmt.Fprintln(diagOut, "Syntax errors occured")
		return "", false
	}
	if dumpAST {
		fmt.Fprintln(diagOut, tree)
	}

	if errs := compiler.Check(tree); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(diagOut, err)
		}
		fmt.Fprintln(diagOut, "Semantic errors occured")
		return "", false
	}

	ir, err := compiler.Generate(tree)
	if err != nil {
		fmt.Fprintln(diagOut, err)
		return "", false
	}
	return ir, true
}
