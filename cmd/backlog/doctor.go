package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check backlog installation and environment health",
	Long: `Run health checks to diagnose common configuration and environment
issues.

This command checks for:
- gh CLI availability and authentication
- Target repository resolution
- Project board configuration and Status field discovery

Exit codes:
  0 - All checks passed
  1 - One or more checks failed`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running backlog health checks...\n\n")

		failures := 0

		// Check 1: gh CLI availability
		fmt.Printf("%s gh CLI\n", cyan("→"))
		if _, err := exec.LookPath("gh"); err != nil {
			fmt.Printf("  %s gh not found on PATH (install from https://cli.github.com/)\n", red("✗"))
			fmt.Printf("\n%s gh is required; remaining checks skipped\n", red("✗"))
			os.Exit(exitFailure)
		}
		fmt.Printf("  %s gh found\n", green("✓"))

		// Check 2: authentication
		fmt.Printf("%s Authentication\n", cyan("→"))
		auth := exec.CommandContext(ctx, "gh", "auth", "status")
		if out, err := auth.CombinedOutput(); err != nil {
			failures++
			fmt.Printf("  %s gh auth status failed\n", red("✗"))
			fmt.Printf("    %s\n", strings.TrimSpace(string(out)))
		} else {
			fmt.Printf("  %s Authenticated\n", green("✓"))
		}

		// Check 3: repository resolution
		fmt.Printf("%s Repository\n", cyan("→"))
		repoArgs := []string{"repo", "view"}
		if cfg.Repo != "" {
			repoArgs = append(repoArgs, cfg.Repo)
		}
		repoArgs = append(repoArgs, "--json", "nameWithOwner", "--jq", ".nameWithOwner")
		repoCmd := exec.CommandContext(ctx, "gh", repoArgs...)
		if out, err := repoCmd.Output(); err != nil {
			failures++
			fmt.Printf("  %s Could not resolve repository\n", red("✗"))
		} else {
			fmt.Printf("  %s Repository: %s\n", green("✓"), strings.TrimSpace(string(out)))
		}

		// Check 4: project board configuration
		fmt.Printf("%s Project board\n", cyan("→"))
		if cfg.ProjectID == "" || cfg.ProjectNumber == 0 {
			fmt.Printf("  %s Not configured (set BKG_PROJECT_ID and BKG_PROJECT_NUMBER to enable sync)\n", yellow("⚠"))
		} else {
			client := newClient()
			field, err := client.GetStatusField(ctx, cfg.ProjectID)
			if err != nil {
				failures++
				fmt.Printf("  %s Could not discover Status field: %v\n", red("✗"), err)
			} else {
				names := make([]string, 0, len(field.Options))
				for name := range field.Options {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Printf("  %s Project %d Status options: %s\n", green("✓"), cfg.ProjectNumber, strings.Join(names, ", "))
			}
		}

		fmt.Println()
		if failures > 0 {
			fmt.Printf("%s %d check(s) failed\n", red("✗"), failures)
			os.Exit(exitFailure)
		}
		fmt.Printf("%s All checks passed\n", green("✓"))
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
