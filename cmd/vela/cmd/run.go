package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	verrors "github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/interp"
	"github.com/vela-lang/vela/internal/intrinsics"
	"github.com/vela-lang/vela/internal/parser"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
	maxDepth int
	seed     int64
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Vela source file or expression",
	Long: `Execute a Vela program from a file or an inline expression.

Examples:
  # Run a script file
  vela run script.vl

  # Evaluate an inline expression
  vela run -e "println(1 + 2);"

  # Run with an AST dump (for debugging)
  vela run --dump-ast script.vl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before evaluating")
	runCmd.Flags().BoolVar(&trace, "trace", false, "announce when evaluation starts (for debugging)")
	runCmd.Flags().IntVar(&maxDepth, "max-depth", 100, "scope stack depth cap")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for Math/Runtime intrinsics")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	prog, perrs, lexErrs := parser.Parse(source)
	if len(lexErrs) > 0 {
		fmt.Fprintln(os.Stderr, lexErrs[0])
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}
	if len(perrs) > 0 {
		fmt.Fprint(os.Stderr, verrors.FormatAll(sourceErrors(perrs, source, filename), true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	if dumpAST {
		fmt.Println("AST:")
		spew.Dump(prog)
		fmt.Println()
	}

	interpreter := interp.New(os.Stdout, os.Stderr, os.Stdin, intrinsics.Register,
		interp.WithMaxDepth(maxDepth), interp.WithSeed(seed))

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] evaluating %s\n", filename)
	}

	if _, err := interpreter.Run(prog, source, filename); err != nil {
		if se, ok := err.(*verrors.SourceError); ok {
			fmt.Fprintln(os.Stderr, se.Format(true))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("execution failed")
	}
	return nil
}

// readSource resolves the program text either from -e or a single file
// argument.
func readSource(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

// sourceErrors wraps the parser's collected diagnostics with the source
// text and file name so they render with a caret-pointed context line.
func sourceErrors(errs []*parser.Error, source, filename string) []*verrors.SourceError {
	out := make([]*verrors.SourceError, len(errs))
	for i, e := range errs {
		out[i] = verrors.New(e.Pos, e.Code, e.Message, source, filename)
	}
	return out
}
