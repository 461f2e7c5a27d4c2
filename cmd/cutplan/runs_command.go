package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cutplan/internal/runs"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runs.Open(cfg.Paths.DataDir)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			history, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, history)
			}

			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(history))
			for _, run := range history {
				rows = append(rows, []string{
					run.ID,
					run.CreatedAt.Local().Format(time.DateTime),
					truncateText(run.ScriptPath, 40),
					strconv.Itoa(run.Matched),
					strconv.Itoa(run.Partial),
					strconv.Itoa(run.Unmatched),
					string(run.Status),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Created", "Script", "Matched", "Partial", "Unmatched", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit run history as JSON")
	return cmd
}
