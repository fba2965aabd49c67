package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/interp"
	"github.com/vela-lang/vela/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Vela session",
	Long: `Start a line-at-a-time read-eval-print loop.

Ordinary lines are parsed and evaluated against a persistent interpreter; a
non-Null result is printed. Lines starting with '$' are meta-commands:
  $loadfile <path>  parse and evaluate a file
  $loadmod <name>   load an optional intrinsic module
  $erase            discard runtime state and start fresh
  $quit             exit the session`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().IntVar(&maxDepth, "max-depth", 100, "scope stack depth cap")
	replCmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for Math/Runtime intrinsics")
}

func runRepl(_ *cobra.Command, _ []string) error {
	session := repl.New(os.Stdout, os.Stderr, os.Stdin,
		interp.WithMaxDepth(maxDepth), interp.WithSeed(seed))
	return session.Run()
}
