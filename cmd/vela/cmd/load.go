package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	verrors "github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/parser"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Parse a Vela source file without executing it",
	Long: `Parse a file and report any lexer or parser errors, without evaluating
the program. Useful for checking a script's syntax before running it, and
the non-interactive counterpart of the REPL's $loadfile.`,
	Args: cobra.ExactArgs(1),
	RunE: loadScript,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func loadScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	_, perrs, lexErrs := parser.Parse(source)
	if len(lexErrs) > 0 {
		fmt.Fprintln(os.Stderr, lexErrs[0])
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}
	if len(perrs) > 0 {
		fmt.Fprint(os.Stderr, verrors.FormatAll(sourceErrors(perrs, source, filename), true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "%s: OK\n", filename)
	}
	return nil
}
