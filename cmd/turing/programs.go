package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Manage programs in the store",
	Long:  `Lists, uploads, prints and removes program definitions in the store selected by --store.`,
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()
		return cli.ListPrograms(cmd.Context(), cmd.OutOrStdout(), store)
	},
}

var programsPushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Save a program file to the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		name, _ := cmd.Flags().GetString("name")
		saved, err := cli.PushProgram(cmd.Context(), store, args[0], name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", saved)
		return nil
	},
}

var programsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored program as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()
		return cli.ShowProgram(cmd.Context(), cmd.OutOrStdout(), store, args[0])
	},
}

var programsRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a stored program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()
		return cli.RemoveProgram(cmd.Context(), store, args[0])
	},
}

var programsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Save the built-in demonstration programs to the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		names, err := cli.SeedPrograms(cmd.Context(), store)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.AddCommand(programsListCmd, programsPushCmd, programsShowCmd, programsRmCmd, programsSeedCmd)
	programsPushCmd.Flags().String("name", "", "Store under this name instead of the program's own")
}
