package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vela",
	Short: "Vela interpreter",
	Long: `vela is a tree-walking interpreter for Vela, a small dynamically-typed,
object-oriented, expression-centric scripting language.

Source text is tokenized, parsed into an AST, and evaluated directly over a
lexically-scoped, reference-counted object model. Vela has classes with
single inheritance, enums, ranges, slices, arrays, a small numeric tower, and
a standard surface for console I/O, math, debugging, and runtime reflection.`,
	Version: Version,
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

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
