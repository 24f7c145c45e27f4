package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a program until it halts, gets stuck or exhausts its step budget",
	Long: `Loads a program file and runs it. The exit status reports the outcome:
0 halted, 2 undefined transition, 3 step budget exceeded, 1 error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := setupLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		trace, _ := cmd.Flags().GetBool("trace")
		width, _ := cmd.Flags().GetInt("width")
		quiet, _ := cmd.Flags().GetBool("quiet")
		chunk, _ := cmd.Flags().GetInt("chunk")
		eventsPath, _ := cmd.Flags().GetString("events")

		opts := cli.RunOptions{
			MaxSteps:  maxSteps,
			Trace:     trace,
			HalfWidth: width,
			Quiet:     quiet,
			ChunkSize: chunk,
		}
		if eventsPath != "" {
			f, err := os.Create(eventsPath)
			if err != nil {
				return fmt.Errorf("failed to create events file: %w", err)
			}
			defer f.Close()
			opts.Events = f
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		out, err := cli.RunProgram(ctx, cmd.OutOrStdout(), args[0], opts, logger)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Warn("run interrupted", "signal", ctx.Signal())
				return exitStatus(130)
			}
			return err
		}
		if code := cli.ExitCode(out); code != cli.ExitHalted {
			return exitStatus(code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("max-steps", domain.DefaultMaxSteps, "Step budget")
	runCmd.Flags().Bool("trace", false, "Print the tape window after every step")
	runCmd.Flags().Int("width", 0, "Cells shown on each side of the head (0 fits the terminal)")
	runCmd.Flags().BoolP("quiet", "q", false, "Print nothing; report through the exit status only")
	runCmd.Flags().Int("chunk", 0, "Tape growth chunk size (0 uses the default)")
	runCmd.Flags().String("events", "", "Write step and outcome events as JSON lines to this file")
}
