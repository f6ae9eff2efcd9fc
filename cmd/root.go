package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "splc",
	Short: "splc compiles SPL into line-numbered BASIC",
	Long: `splc compiles SPL, a small block-structured teaching language, into
line-numbered BASIC source text.

Commands:
  compile  Translate an SPL source file into a BASIC file
  check    Run the front end only and report diagnostics
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(CompileCmd, CheckCmd)
}
