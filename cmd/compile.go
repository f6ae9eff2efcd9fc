package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/diag"
)

var (
	lineStart int
	lineStep  int
)

// compile: the full pipeline, all-or-nothing output
var CompileCmd = &cobra.Command{
	Use:   "compile <input-file> <output-file>",
	Short: "Translate an SPL source file into a line-numbered BASIC file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := compiler.Config{LineStart: lineStart, LineStep: lineStep}
		if err := compiler.CompileAndWrite(args[0], args[1], cfg); err != nil {
			reportDiagnostics(err)
			return err
		}
		return nil
	},
}

func init() {
	CompileCmd.Flags().IntVar(&lineStart, "line-start", 10, "first BASIC line number")
	CompileCmd.Flags().IntVar(&lineStep, "line-step", 10, "increment between BASIC line numbers")
}

// reportDiagnostics prints each compiler diagnostic on its own stderr
// line. Non-diagnostic errors (unreadable input file, failed write) pass
// through unchanged.
func reportDiagnostics(err error) {
	var list diag.List
	if errors.As(err, &list) {
		for _, d := range list {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
