package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"commentwatch/internal/analyzer"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var filePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [comment ...]",
		Short: "Score comments and save them as a new session",
		Long: `Score comments with the external worker and save the results as a new
session, which becomes the current session.

Comments come from arguments (one comment per argument), from --file
(one comment per line), or from stdin when neither is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := gatherComments(cmd, args, filePath)
			if err != nil {
				return err
			}

			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			bridge, err := ctx.startBridge(cmd.Context())
			if err != nil {
				return err
			}
			defer bridge.Stop()

			sess, err := analyzer.New(bridge, store, logger).Analyze(cmd.Context(), comments)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, sess)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s saved (%d comments)\n", sess.ID, len(sess.Results))
			fmt.Fprintln(out, renderResultsTable(sess.Results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read comments from a file, one per line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the saved session as JSON")
	return cmd
}

func newReanalyzeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reanalyze [session-id]",
		Short: "Rescore an existing session's comments in place",
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
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			bridge, err := ctx.startBridge(cmd.Context())
			if err != nil {
				return err
			}
			defer bridge.Stop()

			sess, err := analyzer.New(bridge, store, logger).Reanalyze(cmd.Context(), id)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, sess)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s rescored (%d comments)\n", sess.ID, len(sess.Results))
			fmt.Fprintln(out, renderResultsTable(sess.Results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the rescored session as JSON")
	return cmd
}

func gatherComments(cmd *cobra.Command, args []string, filePath string) ([]string, error) {
	if len(args) > 0 {
		return nonBlank(args), nil
	}

	if strings.TrimSpace(filePath) != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open comments file: %w", err)
		}
		defer file.Close()
		return readCommentLines(file)
	}

	return readCommentLines(cmd.InOrStdin())
}

func readCommentLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var comments []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			comments = append(comments, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}
	if len(comments) == 0 {
		return nil, errors.New("no comments provided")
	}
	return comments, nil
}

func nonBlank(values []string) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return kept
}
