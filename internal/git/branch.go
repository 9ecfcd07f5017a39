// Package git derives and creates feature branches for issues.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/steveyegge/backlog/internal/types"
)

const slugMaxLen = 50

var (
	nonWordRe   = regexp.MustCompile(`[^\w\s-]`)
	separatorRe = regexp.MustCompile(`[\s_-]+`)
	edgeDashRe  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify lowercases text and collapses it into a hyphenated slug capped at
// 50 characters, suitable for a branch name segment.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonWordRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, "-")
	s = edgeDashRe.ReplaceAllString(s, "")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s
}

// BranchPrefix maps an issue's type label to a conventional branch prefix.
func BranchPrefix(issueType string) string {
	switch issueType {
	case types.TypeBug:
		return "fix"
	case types.TypeDocs:
		return "docs"
	case types.TypeTechDebt:
		return "refactor"
	default:
		return "feat"
	}
}

// BranchName derives the feature branch for an issue, e.g.
// "feat/issue-42-add-payout-retries".
func BranchName(issue *types.Issue) string {
	return fmt.Sprintf("%s/issue-%d-%s", BranchPrefix(issue.Type), issue.Number, Slugify(issue.Title))
}

// EnsureBranch checks out the named branch, creating it when it does not
// exist. Returns true when a new branch was created.
func EnsureBranch(ctx context.Context, dir, name string) (bool, error) {
	verify := exec.CommandContext(ctx, "git", "rev-parse", "--verify", name)
	verify.Dir = dir
	if verify.Run() == nil {
		checkout := exec.CommandContext(ctx, "git", "checkout", name)
		checkout.Dir = dir
		if out, err := checkout.CombinedOutput(); err != nil {
			return false, fmt.Errorf("git checkout %s failed: %w\nOutput: %s", name, err, string(out))
		}
		return false, nil
	}

	create := exec.CommandContext(ctx, "git", "checkout", "-b", name)
	create.Dir = dir
	if out, err := create.CombinedOutput(); err != nil {
		return false, fmt.Errorf("git checkout -b %s failed: %w\nOutput: %s", name, err, string(out))
	}
	return true, nil
}
