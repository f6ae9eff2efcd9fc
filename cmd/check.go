package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler"
)

var dumpIR bool

// check: front end only, no output file
var CheckCmd = &cobra.Command{
	Use:   "check <input-file>",
	Short: "Parse and type-check an SPL source file without generating output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		src := string(content)

		if dumpIR {
			code, err := compiler.Instructions(src)
			if err != nil {
				reportDiagnostics(err)
				return err
			}
			for _, in := range code {
				fmt.Println(in.String())
			}
			return nil
		}

		if err := compiler.Check(src); err != nil {
			reportDiagnostics(err)
			return err
		}
		fmt.Printf("%s: ok\n", args[0])
		return nil
	},
}

func init() {
	CheckCmd.Flags().BoolVar(&dumpIR, "ir", false, "print the intermediate three-address code")
}
