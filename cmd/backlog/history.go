package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/backlog/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent board sync runs",
	Long: `Show recent reconciliation runs from the local history database.

History records outcomes only (counts and timing); the tracker's labels and
the board remain the only source of truth for issue state.`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := storage.Open(cfg.HistoryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
		defer store.Close()

		runs, err := store.RecentRuns(context.Background(), limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		if len(runs) == 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("%s\n", gray("No sync runs recorded yet"))
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, run := range runs {
			errCount := fmt.Sprintf("%d", run.Errors)
			if run.Errors > 0 {
				errCount = red(errCount)
			}

			fmt.Printf("%s  project %d  issues %d-%d\n",
				cyan(run.StartedAt.Local().Format("2006-01-02 15:04:05")),
				run.ProjectNumber, run.StartIssue, run.EndIssue)
			fmt.Printf("  updated %d, skipped %d, errors %s  (%s, run %s)\n",
				run.Updated, run.Skipped, errCount,
				run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond), run.ID)
		}
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
