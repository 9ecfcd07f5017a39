package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/backlog/internal/issues"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch ISSUE_NUMBER",
	Short: "Fetch an issue with structured metadata",
	Long: `Fetch an issue and print it as JSON with structured metadata:
epic, priority, status and type decoded from labels, and acceptance
criteria parsed from the issue body.

Warnings (closed issue, existing assignees, missing metadata) go to stderr;
the JSON record always goes to stdout so callers can inspect it even when
the issue is unsuitable.

Exit codes:
  0 - issue is open and suitable for implementation
  1 - transport failure
  4 - issue fetched but unsuitable (closed)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		number, err := strconv.Atoi(args[0])
		if err != nil || number <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid issue number %q\n", args[0])
			os.Exit(exitFailure)
		}

		ctx := context.Background()
		client := newClient()

		raw, err := client.ViewIssue(ctx, number)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: fetching issue #%d: %v\n", number, err)
			os.Exit(exitFailure)
		}

		issue := issues.FromRaw(raw)
		valid, warnings := issues.Validate(issue)

		yellow := color.New(color.FgYellow).SprintFunc()
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "%s %s\n", yellow("⚠"), w)
		}
		if len(warnings) > 0 {
			fmt.Fprintln(os.Stderr)
		}

		out, err := json.MarshalIndent(issue, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: encoding issue: %v\n", err)
			os.Exit(exitFailure)
		}
		fmt.Println(string(out))

		if !valid {
			os.Exit(exitInvalid)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
