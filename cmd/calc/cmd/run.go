package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gocalc/pkg/rt"
	"gocalc/pkg/vm"
)

var inputsFile string

var runCmd = &cobra.Command{
	Use:   "run [expression]",
	Short: "compile an expression and execute it immediately",
	Long: `run compiles the expression and executes the resulting unit in the
built-in machine. Declared variables are read interactively from the
terminal, or from a TOML/YAML table given with --inputs.

Examples:
  calc run "2 + 3*4"
  calc run "with a, b: a*b"
  calc run --inputs values.yaml "with a: a/2"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ir, ok := compileSource(args[0])
		if !ok {
			os.Exit(1)
		}

		unit, err := vm.Load(ir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var env vm.Runtime
		if inputsFile != "" {
			values, err := rt.LoadInputs(inputsFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			env = &rt.Preset{Values: values}
		} else {
			env = rt.NewConsole(nil, nil)
		}

		if err := vm.Run(unit, env); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&inputsFile, "inputs", "", "TOML or YAML file mapping variable names to values")
	rootCmd.AddCommand(runCmd)
}
