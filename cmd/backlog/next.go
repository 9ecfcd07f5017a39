package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/backlog/internal/gh"
	"github.com/steveyegge/backlog/internal/labels"
	"github.com/steveyegge/backlog/internal/selector"
	"github.com/steveyegge/backlog/internal/types"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Select the next issue to work on",
	Long: `Select the next issue by priority cascade: critical, then high, then
medium, then low. Within a tier the oldest open issue wins. With an explicit
--priority only that tier is queried and no fallback occurs.

The selected issue number is printed to stdout; selection details go to
stderr.

Exit codes:
  0 - issue selected
  1 - transport failure
  2 - explicit priority tier had no matching issue
  3 - full cascade found no matching issue`,
	Run: func(cmd *cobra.Command, args []string) {
		priority, _ := cmd.Flags().GetString("priority")
		epic, _ := cmd.Flags().GetString("epic")
		status, _ := cmd.Flags().GetString("status")

		if priority != "" && !types.KnownPriority(priority) {
			fmt.Fprintf(os.Stderr, "Error: invalid priority %q (want one of: %s)\n",
				priority, strings.Join(types.Priorities(), ", "))
			os.Exit(exitFailure)
		}

		ctx := context.Background()
		sel := selector.New(newClient())

		var summary *gh.IssueSummary
		var err error
		if priority != "" {
			summary, err = sel.Next(ctx, priority, epic, status)
		} else {
			summary, err = sel.NextWithFallback(ctx, epic, status)
		}

		if err != nil {
			red := color.New(color.FgRed).SprintFunc()
			filters := describeFilters(priority, epic, status)

			switch {
			case errors.Is(err, selector.ErrNoMatch):
				fmt.Fprintf(os.Stderr, "%s No issues found matching: %s\n", red("✗"), filters)
				os.Exit(exitNoMatch)
			case errors.Is(err, selector.ErrExhausted):
				fmt.Fprintf(os.Stderr, "%s No issues found at any priority tier matching: %s\n", red("✗"), filters)
				os.Exit(exitExhausted)
			default:
				fmt.Fprintf(os.Stderr, "Error: querying issues: %v\n", err)
				os.Exit(exitFailure)
			}
		}

		labelNames := make([]string, 0, len(summary.Labels))
		for _, l := range summary.Labels {
			labelNames = append(labelNames, l.Name)
		}
		tier, ok := labels.Decode(labelNames, types.PrefixPriority)
		if !ok {
			tier = "unknown"
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s Selected issue #%d: %s\n", green("✓"), summary.Number, summary.Title)
		fmt.Fprintf(os.Stderr, "  Priority: %s\n", tier)
		fmt.Fprintf(os.Stderr, "  Created:  %s\n", summary.CreatedAt.Format(time.RFC3339))

		if len(summary.Assignees) > 0 {
			names := make([]string, 0, len(summary.Assignees))
			for _, a := range summary.Assignees {
				names = append(names, a.Login)
			}
			fmt.Fprintf(os.Stderr, "  %s Assigned to: %s\n", yellow("⚠"), strings.Join(names, ", "))
		}
		fmt.Fprintln(os.Stderr)

		fmt.Println(summary.Number)
	},
}

func init() {
	nextCmd.Flags().String("priority", "", "priority tier to query (default: full cascade)")
	nextCmd.Flags().String("epic", "", "filter by epic, e.g. 'booking-payment'")
	nextCmd.Flags().String("status", "backlog", "status label to match")
	rootCmd.AddCommand(nextCmd)
}

func describeFilters(priority, epic, status string) string {
	var filters []string
	if priority != "" {
		filters = append(filters, labels.Encode(types.PrefixPriority, priority))
	}
	if epic != "" {
		filters = append(filters, labels.Encode(types.PrefixEpic, epic))
	}
	filters = append(filters, labels.Encode(types.PrefixStatus, status))
	return strings.Join(filters, ", ")
}
