package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a transition table for gaps and unknown symbols",
	Long: `Reports transitions that use symbols outside the alphabet, states that do not
handle every symbol, and tables with no way into a halting state. Findings are
advisory; a program with findings still runs. Exits 1 when there are findings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := cli.Validate(cmd.OutOrStdout(), args[0])
		if err != nil {
			return err
		}
		if n > 0 {
			return exitStatus(cli.ExitError)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
