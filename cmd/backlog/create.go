package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// epicGroup is one group in the bulk-create file. Epic, status and priority
// are full labels ("epic:booking-payment", "status:backlog",
// "priority:high") applied to every issue in the group, plus type:feature.
type epicGroup struct {
	Epic     string `yaml:"epic"`
	Status   string `yaml:"status"`
	Priority string `yaml:"priority"`
	Issues   []struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"issues"`
}

var createCmd = &cobra.Command{
	Use:   "create FILE",
	Short: "Bulk-create labeled issues from a YAML file",
	Long: `Create issues in bulk from a YAML file of epic groups:

  - epic: "epic:booking-payment"
    status: "status:backlog"
    priority: "priority:high"
    issues:
      - title: "Add payout retries"
        body: |
          ## Acceptance Criteria
          - [ ] retried on failure

Creation is rate limited and a failure on one issue does not stop the rest.
Exits non-zero when any creation failed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		var groups []epicGroup
		if err := yaml.Unmarshal(data, &groups); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing %s: %v\n", args[0], err)
			os.Exit(exitFailure)
		}

		total := 0
		for _, g := range groups {
			total += len(g.Issues)
		}

		ctx := context.Background()
		client := newClient()

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("%s Creating %d issues across %d epics...\n\n", cyan("→"), total, len(groups))

		created := 0
		failed := 0
		for _, g := range groups {
			fmt.Printf("Epic: %s (%s, %s): %d issue(s)\n", g.Epic, g.Status, g.Priority, len(g.Issues))

			for _, issue := range g.Issues {
				labelList := []string{g.Epic, g.Status, g.Priority, "type:feature"}

				url, err := client.CreateIssue(ctx, issue.Title, issue.Body, labelList)
				if err != nil {
					fmt.Printf("  %s Failed to create %q: %v\n", red("✗"), issue.Title, err)
					failed++
				} else {
					fmt.Printf("  %s Created: %s\n", green("✓"), issue.Title)
					fmt.Printf("    URL: %s\n", url)
					created++
				}

				// Rate limiting: don't overwhelm the tracker API.
				time.Sleep(cfg.CreateDelay)
			}
			fmt.Println()
		}

		fmt.Printf("Summary:\n")
		fmt.Printf("  Total:   %d\n", total)
		fmt.Printf("  Created: %d\n", created)
		fmt.Printf("  Failed:  %d\n", failed)

		if failed > 0 {
			os.Exit(exitFailure)
		}
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
