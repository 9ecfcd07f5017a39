// Package issues projects raw tracker payloads into the normalized Issue
// record and computes its validity for downstream implementation work.
package issues

import (
	"fmt"
	"strings"

	"github.com/steveyegge/backlog/internal/criteria"
	"github.com/steveyegge/backlog/internal/gh"
	"github.com/steveyegge/backlog/internal/labels"
	"github.com/steveyegge/backlog/internal/types"
)

// FromRaw builds the projected Issue from a raw tracker payload: label-coded
// attributes are decoded, the acceptance-criteria checklist is parsed from
// the body, and assignee logins are flattened. Pure; no tracker calls.
func FromRaw(raw *gh.RawIssue) *types.Issue {
	labelNames := make([]string, 0, len(raw.Labels))
	for _, l := range raw.Labels {
		labelNames = append(labelNames, l.Name)
	}

	assignees := make([]string, 0, len(raw.Assignees))
	for _, a := range raw.Assignees {
		assignees = append(assignees, a.Login)
	}

	issue := &types.Issue{
		Number:             raw.Number,
		Title:              raw.Title,
		Body:               raw.Body,
		Labels:             labelNames,
		AcceptanceCriteria: criteria.Parse(raw.Body),
		Assignees:          assignees,
		State:              types.State(raw.State),
		URL:                raw.URL,
	}

	issue.Epic, _ = labels.Decode(labelNames, types.PrefixEpic)
	issue.Priority, _ = labels.Decode(labelNames, types.PrefixPriority)
	issue.Status, _ = labels.Decode(labelNames, types.PrefixStatus)
	issue.Type, _ = labels.Decode(labelNames, types.PrefixType)

	if raw.Milestone != nil {
		issue.Milestone = raw.Milestone.Title
	}

	return issue
}

// Validate reports whether an issue is suitable for implementation, plus
// soft warnings in a fixed order. Only the open/closed check affects
// validity; missing optional metadata is reported but never blocks.
func Validate(issue *types.Issue) (bool, []string) {
	var warnings []string

	if issue.State == types.StateClosed {
		warnings = append(warnings, "issue is closed")
	}

	if len(issue.Assignees) > 0 {
		warnings = append(warnings,
			fmt.Sprintf("already assigned to: %s", strings.Join(issue.Assignees, ", ")))
	}

	if len(issue.AcceptanceCriteria) == 0 {
		warnings = append(warnings, "no acceptance criteria found in issue body")
	}

	if issue.Epic == "" {
		warnings = append(warnings, "no epic label found")
	}

	if issue.Priority == "" {
		warnings = append(warnings, "no priority label found")
	}

	return issue.State == types.StateOpen, warnings
}
