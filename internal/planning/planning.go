// Package planning renders the implementation-context prompt handed to
// downstream tooling for a selected issue.
package planning

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/steveyegge/backlog/internal/types"
)

// PromptPath is where the context prompt for an issue is written.
func PromptPath(number int) string {
	return filepath.Join("docs", "plans", fmt.Sprintf("issue-%d-context-prompt.md", number))
}

// ContextPrompt builds the codebase-analysis prompt for an issue. epicHint
// describes where related code lives (see config.EpicContext).
func ContextPrompt(issue *types.Issue, epicHint string) string {
	var b strings.Builder

	b.WriteString("# Issue Implementation Context Analysis\n\n")
	fmt.Fprintf(&b, "**Issue #%d:** %s\n\n", issue.Number, issue.Title)
	fmt.Fprintf(&b, "**Epic:** %s\n", orNotSpecified(issue.Epic))
	fmt.Fprintf(&b, "**Priority:** %s\n", orNotSpecified(issue.Priority))
	fmt.Fprintf(&b, "**Status:** %s\n\n", orNotSpecified(issue.Status))

	b.WriteString("## Acceptance Criteria\n")
	if len(issue.AcceptanceCriteria) == 0 {
		b.WriteString("  (No acceptance criteria found)\n")
	} else {
		for _, c := range issue.AcceptanceCriteria {
			marker := "[ ]"
			if c.Checked {
				marker = "[x]"
			}
			fmt.Fprintf(&b, "  - %s %s\n", marker, c.Text)
		}
	}

	b.WriteString("\n## Required Analysis\n\n")
	b.WriteString("Analyze the codebase to understand how to implement this issue:\n\n")
	fmt.Fprintf(&b, "1. **Find relevant files:** Locate existing code related to %s\n", epicHint)
	b.WriteString("2. **Identify patterns:** Find similar implementations to follow\n")
	b.WriteString("3. **Check dependencies:** Determine what libraries/services are needed\n")
	b.WriteString("4. **Review tests:** Check existing test patterns and coverage\n\n")

	fmt.Fprintf(&b, "Focus areas based on epic '%s':\n", issue.Epic)
	b.WriteString("- Existing implementations in this area\n")
	b.WriteString("- Database models and schemas\n")
	b.WriteString("- Server actions and API routes\n")
	b.WriteString("- UI components (if applicable)\n")
	b.WriteString("- Test files and patterns\n\n")

	b.WriteString("## Expected Output\n\n")
	b.WriteString("Provide:\n")
	b.WriteString("- **Files to modify** (with brief reason for each)\n")
	b.WriteString("- **Files to create** (if any)\n")
	b.WriteString("- **Existing patterns to follow** (with file references)\n")
	b.WriteString("- **Dependencies required** (libraries, services)\n")
	b.WriteString("- **Similar implementations** (for reference)\n\n")
	b.WriteString("This analysis will be used to generate the implementation plan.\n")

	return b.String()
}

// SavePrompt writes the prompt for an issue, creating parent directories.
// Returns the path written.
func SavePrompt(issue *types.Issue, epicHint string) (string, error) {
	path := PromptPath(issue.Number)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating plans directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(ContextPrompt(issue, epicHint)), 0644); err != nil {
		return "", fmt.Errorf("writing context prompt: %w", err)
	}
	return path, nil
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
