package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"commentwatch/internal/session"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Browse and manage analysis history",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	sessionsCmd.AddCommand(newSessionsUseCommand(ctx))
	sessionsCmd.AddCommand(newSessionsDeleteCommand(ctx))
	sessionsCmd.AddCommand(newSessionsClearCommand(ctx))

	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			sessions := store.List()
			if asJSON {
				return writeJSON(cmd, sessions)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions yet. Run `commentwatch analyze` to create one.")
				return nil
			}

			currentID := store.CurrentID()
			rows := make([][]string, 0, len(sessions))
			for _, sess := range sessions {
				marker := ""
				if sess.ID == currentID {
					marker = "*"
				}
				toxic := 0
				for _, record := range sess.Results {
					if record.Status == session.StatusToxic {
						toxic++
					}
				}
				rows = append(rows, []string{
					marker,
					sess.ID,
					formatTime(sess.Timestamp),
					strconv.Itoa(len(sess.Results)),
					strconv.Itoa(toxic),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"", "ID", "Created", "Comments", "Toxic"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit sessions as JSON")
	return cmd
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session's scored comments (default: current session)",
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

			results := filterByStatus(sess.Results, statusFilter)
			if asJSON {
				filtered := sess
				filtered.Results = results
				return writeJSON(cmd, filtered)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s, created %s, %d comments\n", sess.ID, formatTime(sess.Timestamp), len(sess.Results))
			if statusFilter != "" {
				fmt.Fprintf(out, "Showing %d results with status %q\n", len(results), statusFilter)
			}
			fmt.Fprintln(out, renderResultsTable(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show results with this status (Toxic, Clean, Error, ...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the session as JSON")
	return cmd
}

func newSessionsUseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-id>",
		Short: "Make a session the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := store.Get(id); !ok {
				return fmt.Errorf("session %s not found", id)
			}
			store.SetCurrent(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Current session is now %s\n", id)
			return nil
		},
	}
}

func newSessionsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := store.Get(id); !ok {
				return fmt.Errorf("session %s not found", id)
			}
			store.Delete(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", id)
			return nil
		},
	}
}

func newSessionsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			count := store.Count()
			store.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d sessions\n", count)
			return nil
		},
	}
}

// resolveSessionID picks the explicit argument when present and falls back
// to the current session.
func resolveSessionID(store *session.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if id := store.CurrentID(); id != "" {
		return id, nil
	}
	return "", errors.New("no current session; pass a session ID or run `commentwatch analyze` first")
}

func filterByStatus(results []session.CommentResult, status string) []session.CommentResult {
	if status == "" {
		return results
	}
	filtered := make([]session.CommentResult, 0, len(results))
	for _, record := range results {
		if record.Status == status {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
