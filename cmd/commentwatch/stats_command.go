package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"commentwatch/internal/session"
	"commentwatch/internal/stats"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [session-id]",
		Short: "Summarize one session or the whole history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			var sessions []session.Session
			if all {
				sessions = store.List()
			} else {
				id, err := resolveSessionID(store, args)
				if err != nil {
					return err
				}
				sess, ok := store.Get(id)
				if !ok {
					return fmt.Errorf("session %s not found", id)
				}
				sessions = []session.Session{sess}
			}

			summary := stats.Summarize(sessions...)
			if asJSON {
				return writeJSON(cmd, summary)
			}

			rows := [][]string{
				{"Sessions", strconv.Itoa(summary.Sessions)},
				{"Comments", strconv.Itoa(summary.Comments)},
				{"Toxic", strconv.Itoa(summary.ByStatus[session.StatusToxic])},
				{"Clean", strconv.Itoa(summary.ByStatus[session.StatusClean])},
				{"Errors", strconv.Itoa(summary.ByStatus[session.StatusError])},
				{"Mean probability", formatProbability(summary.MeanProbability)},
				{"Max probability", formatProbability(summary.MaxProbability)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

			if len(summary.TopRules) > 0 {
				ruleRows := make([][]string, 0, len(summary.TopRules))
				for _, rc := range summary.TopRules {
					ruleRows = append(ruleRows, []string{stats.DisplayLabel(rc.Rule), strconv.Itoa(rc.Count)})
				}
				fmt.Fprintln(out, renderTable([]string{"Rule", "Hits"}, ruleRows, []columnAlignment{alignLeft, alignRight}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Aggregate across every stored session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	return cmd
}
