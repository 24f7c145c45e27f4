package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the program's states and transitions.
With --run N the machine runs up to N steps first and the visited states are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("run")
		return cli.Graph(cmd.OutOrStdout(), args[0], steps)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("run", 0, "Run this many steps and highlight the visited states")
}
