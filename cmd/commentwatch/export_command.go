package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"commentwatch/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export a session as CSV or JSON (default: current session)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			id, err := resolveSessionID(store, args)
			if err != nil {
				return err
			}
			sess, ok := store.Get(id)
			if !ok {
				return fmt.Errorf("session %s not found", id)
			}

			exporter, err := export.New(format)
			if err != nil {
				return err
			}

			if outputPath == "" {
				return exporter.Export(sess, cmd.OutOrStdout())
			}

			file, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer file.Close()
			if err := exporter.Export(sess, file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported session %s to %s\n", id, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
