package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/backlog/internal/config"
	"github.com/steveyegge/backlog/internal/gh"
)

// Exit codes. Scripts driving this tool need to tell "nothing matched" apart
// from "matched but unsuitable" and from transport failures.
const (
	exitOK        = 0
	exitFailure   = 1 // transport or environment failure
	exitNoMatch   = 2 // explicit priority tier was empty
	exitExhausted = 3 // full priority cascade found nothing
	exitInvalid   = 4 // issue found but not suitable for implementation
)

var (
	cfg      *config.Config
	repoFlag string
)

var rootCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Label-driven backlog automation for GitHub issues and project boards",
	Long: `backlog automates a label-driven delivery workflow on GitHub:

- fetch issues with epic/priority/status metadata parsed from labels and
  acceptance criteria parsed from the issue body
- select the next issue to work on by priority cascade
- keep a project board's Status field in sync with status: labels
- bulk-create labeled issues and generate implementation context prompts

Configuration comes from .backlog.yaml, a .env file, and BKG_* environment
variables; see 'backlog doctor' to verify the environment.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
		if repoFlag != "" {
			cfg.Repo = repoFlag
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "",
		`target repository as "owner/name" (default: current directory's repo)`)
}

// newClient builds the gh-backed tracker/board client or exits.
func newClient() *gh.Client {
	client, err := gh.New(cfg.Repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}
	return client
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}
}
