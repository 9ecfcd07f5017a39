package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/backlog/internal/reconciler"
	"github.com/steveyegge/backlog/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync START_ISSUE END_ISSUE",
	Short: "Synchronize project board status with issue labels",
	Long: `Walk issues START_ISSUE..END_ISSUE and set each one's Status field on
the project board to match its status: label.

Issues without a status label are skipped. Issues missing from the board,
or whose status has no matching board option, are counted as errors. A
failure on one issue never stops the run; re-running the sync is the retry
mechanism and is always safe.

Example:
  backlog sync --project-id PVT_kwHOABC --project-number 4 64 151`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		projectID, _ := cmd.Flags().GetString("project-id")
		projectNumber, _ := cmd.Flags().GetInt("project-number")
		if projectID == "" {
			projectID = cfg.ProjectID
		}
		if projectNumber == 0 {
			projectNumber = cfg.ProjectNumber
		}
		if projectID == "" || projectNumber == 0 {
			fmt.Fprintf(os.Stderr, "Error: project id and number are required (flags, .backlog.yaml, or BKG_PROJECT_ID/BKG_PROJECT_NUMBER)\n")
			os.Exit(exitFailure)
		}

		start, err := strconv.Atoi(args[0])
		if err != nil || start <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid start issue %q\n", args[0])
			os.Exit(exitFailure)
		}
		end, err := strconv.Atoi(args[1])
		if err != nil || end < start {
			fmt.Fprintf(os.Stderr, "Error: invalid end issue %q (must be >= start)\n", args[1])
			os.Exit(exitFailure)
		}

		ctx := context.Background()
		client := newClient()

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("%s Getting project status field information...\n", cyan("→"))
		field, err := client.GetStatusField(ctx, projectID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		names := make([]string, 0, len(field.Options))
		for name := range field.Options {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Printf("%s Status field found with options: %s\n\n", green("✓"), strings.Join(names, ", "))

		aliases := cfg.StatusAliases
		if aliases == nil {
			aliases = reconciler.DefaultAliases()
		}

		rec := reconciler.New(client, client, reconciler.Config{
			ProjectID:     projectID,
			ProjectNumber: projectNumber,
			Field:         field,
			Targets:       reconciler.ResolveTargets(field, aliases),
			Delay:         cfg.SyncDelay,
			Progress: func(r reconciler.ItemResult) {
				switch r.Outcome {
				case reconciler.OutcomeUpdated:
					fmt.Printf("%s Issue #%d: %s\n", green("✓"), r.Issue, r.Detail)
				case reconciler.OutcomeSkipped:
					fmt.Printf("%s Issue #%d: %s, skipping\n", yellow("⚠"), r.Issue, r.Detail)
				case reconciler.OutcomeError:
					fmt.Printf("%s Issue #%d: %s\n", red("✗"), r.Issue, r.Detail)
				}
			},
		})

		fmt.Printf("%s Updating issue statuses in project %d...\n\n", cyan("→"), projectNumber)
		summary, runErr := rec.Reconcile(ctx, start, end)

		recordRun(ctx, summary, projectNumber, start, end)

		fmt.Println()
		fmt.Printf("Summary:\n")
		fmt.Printf("  Updated: %d\n", summary.Updated)
		fmt.Printf("  Skipped: %d\n", summary.Skipped)
		fmt.Printf("  Errors:  %d\n", summary.Errors)
		fmt.Printf("  Total:   %d\n", summary.Total())

		if runErr != nil {
			fmt.Fprintf(os.Stderr, "\nError: run interrupted: %v\n", runErr)
			os.Exit(exitFailure)
		}
	},
}

// recordRun appends the run to local history. History is an audit trail;
// failing to write it never fails the sync.
func recordRun(ctx context.Context, summary reconciler.Summary, projectNumber, start, end int) {
	store, err := storage.Open(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return
	}
	defer store.Close()

	err = store.RecordRun(ctx, &storage.SyncRun{
		ID:            summary.RunID,
		ProjectNumber: projectNumber,
		StartIssue:    start,
		EndIssue:      end,
		Updated:       summary.Updated,
		Skipped:       summary.Skipped,
		Errors:        summary.Errors,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record sync run: %v\n", err)
	}
}

func init() {
	syncCmd.Flags().String("project-id", "", "project board node ID (e.g. PVT_kwHOABC)")
	syncCmd.Flags().Int("project-number", 0, "project board number")
	rootCmd.AddCommand(syncCmd)
}
