package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "turing",
	Short:         "Turing runs deterministic single-tape Turing machines",
	Long:          `Turing loads transition tables from YAML or JSON program files, runs them on a growable tape and reports how they end.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitStatus
		if errors.As(err, &exit) {
			os.Exit(int(exit))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitError)
	}
}

// exitStatus ends the process with a non-zero code after deferred cleanup has run.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Append JSON log records to this file")
	rootCmd.PersistentFlags().String("store", ".turing/programs", "Program store: directory, memory, redis://... or sqlite://...")
}

// setupLogger builds the logger from the persistent flags.
func setupLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	logFile, _ := cmd.Flags().GetString("log-file")
	return cli.NewLogger(debug, logFile)
}

func openStore(cmd *cobra.Command) (ports.ProgramStore, func() error, error) {
	target, _ := cmd.Flags().GetString("store")
	store, closeFn, err := cli.OpenStore(target)
	if err != nil {
		return nil, nil, err
	}
	return middleware.Chain(cli.WithWriteLock(store), middleware.NewValidationMiddleware()), closeFn, nil
}
