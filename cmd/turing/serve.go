package main

import (
	"context"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the program store and live machine sessions over a JSON API, with
Prometheus metrics on /metrics and session events as Server-Sent Events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := setupLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		target, _ := cmd.Flags().GetString("store")
		store, closeStore, err := cli.OpenStore(target)
		if err != nil {
			return err
		}
		defer closeStore()

		addr, _ := cmd.Flags().GetString("addr")
		stepLimit, _ := cmd.Flags().GetInt("step-limit")
		opts := cli.ServeOptions{Addr: addr, StepLimit: stepLimit}

		tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(turing.Version))

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, cmd.OutOrStdout(), store, opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Int("step-limit", 0, "Largest step budget a single run request may use (0 uses the default)")
}
