package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"commentwatch/internal/worker"
)

func newWorkerCommand(ctx *commandContext) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Inspect the external scoring worker",
	}

	workerCmd.AddCommand(newWorkerPingCommand(ctx))

	return workerCmd
}

func newWorkerPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Start the worker, score a probe comment, and report health",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			bridge, err := ctx.startBridge(cmd.Context())
			if err != nil {
				return err
			}
			defer bridge.Stop()
			readyIn := time.Since(started)

			probe := time.Now()
			results := bridge.Score(cmd.Context(), []string{"ping"})
			scoredIn := time.Since(probe)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Worker ready in %s\n", readyIn.Round(time.Millisecond))
			if len(results) == 1 && results[0].Status != worker.StatusError {
				fmt.Fprintf(out, "Probe scored in %s (status %q)\n", scoredIn.Round(time.Millisecond), results[0].Status)
				return nil
			}
			return fmt.Errorf("worker started but failed to score a probe comment (waited %s)", scoredIn.Round(time.Millisecond))
		},
	}
}
