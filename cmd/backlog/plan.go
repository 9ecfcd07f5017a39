package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/backlog/internal/git"
	"github.com/steveyegge/backlog/internal/issues"
	"github.com/steveyegge/backlog/internal/planning"
	"github.com/steveyegge/backlog/internal/selector"
)

var planCmd = &cobra.Command{
	Use:   "plan [ISSUE_NUMBER]",
	Short: "Prepare an issue for implementation",
	Long: `Prepare an issue for implementation: fetch and validate it, create (or
check out) its feature branch, and write a codebase-analysis prompt to
docs/plans/issue-N-context-prompt.md for downstream planning tooling.

With --auto-select the issue is chosen by the priority cascade instead of
being named explicitly.

Exit codes follow 'fetch' and 'next': 1 transport failure, 2/3 selection
misses, 4 issue unsuitable.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		autoSelect, _ := cmd.Flags().GetBool("auto-select")
		priority, _ := cmd.Flags().GetString("priority")
		epic, _ := cmd.Flags().GetString("epic")
		status, _ := cmd.Flags().GetString("status")
		skipBranch, _ := cmd.Flags().GetBool("skip-branch")

		if autoSelect == (len(args) == 1) {
			fmt.Fprintf(os.Stderr, "Error: provide either an issue number or --auto-select\n")
			os.Exit(exitFailure)
		}

		ctx := context.Background()
		client := newClient()

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		var number int
		if autoSelect {
			fmt.Printf("%s Auto-selecting next issue...\n", cyan("→"))
			sel := selector.New(client)

			var err error
			if priority != "" {
				s, serr := sel.Next(ctx, priority, epic, status)
				if serr != nil {
					err = serr
				} else {
					number = s.Number
				}
			} else {
				s, serr := sel.NextWithFallback(ctx, epic, status)
				if serr != nil {
					err = serr
				} else {
					number = s.Number
				}
			}

			switch {
			case errors.Is(err, selector.ErrNoMatch):
				fmt.Fprintf(os.Stderr, "Error: no suitable issue found\n")
				os.Exit(exitNoMatch)
			case errors.Is(err, selector.ErrExhausted):
				fmt.Fprintf(os.Stderr, "Error: no suitable issue found at any priority\n")
				os.Exit(exitExhausted)
			case err != nil:
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitFailure)
			}
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "Error: invalid issue number %q\n", args[0])
				os.Exit(exitFailure)
			}
			number = n
		}

		fmt.Printf("%s Fetching issue #%d...\n", cyan("→"), number)
		raw, err := client.ViewIssue(ctx, number)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: fetching issue #%d: %v\n", number, err)
			os.Exit(exitFailure)
		}

		issue := issues.FromRaw(raw)
		valid, warnings := issues.Validate(issue)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "%s %s\n", yellow("⚠"), w)
		}
		if !valid {
			fmt.Fprintf(os.Stderr, "Error: issue #%d is not suitable for implementation\n", number)
			os.Exit(exitInvalid)
		}

		fmt.Printf("%s Fetched: %s\n", green("✓"), issue.Title)
		fmt.Printf("  Epic: %s, Priority: %s, Status: %s\n\n",
			orDash(issue.Epic), orDash(issue.Priority), orDash(issue.Status))

		if skipBranch {
			fmt.Printf("%s Skipping branch creation (using current branch)\n\n", yellow("⚠"))
		} else {
			branch := git.BranchName(issue)
			created, err := git.EnsureBranch(ctx, "", branch)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitFailure)
			}
			if created {
				fmt.Printf("%s Created branch: %s\n\n", green("✓"), branch)
			} else {
				fmt.Printf("%s Checked out existing branch: %s\n\n", green("✓"), branch)
			}
		}

		path, err := planning.SavePrompt(issue, cfg.EpicContext(issue.Epic))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		fmt.Printf("%s Context prompt saved to: %s\n", green("✓"), path)
		fmt.Printf("\nNext: feed the prompt to your planning tooling, then implement\n")
		fmt.Printf("against the acceptance criteria and close #%d via the PR.\n", number)
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	planCmd.Flags().Bool("auto-select", false, "select the issue by priority cascade")
	planCmd.Flags().String("priority", "", "priority filter for --auto-select")
	planCmd.Flags().String("epic", "", "epic filter for --auto-select")
	planCmd.Flags().String("status", "backlog", "status filter for --auto-select")
	planCmd.Flags().Bool("skip-branch", false, "skip feature branch creation")
	rootCmd.AddCommand(planCmd)
}
