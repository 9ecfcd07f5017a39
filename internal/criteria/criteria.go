// Package criteria extracts acceptance-criteria checklists from issue bodies.
//
// The parser is a single-pass state machine over lines:
//
//	seekingHeader → collecting → done
//
// A line containing "acceptance criteria" (case-insensitive) enters
// collection. While collecting, checkbox items are captured, blank lines pass
// through, a markdown heading ends collection for good, and any other prose
// is ignored. Only the first criteria section in a body is honored; a second
// "Acceptance Criteria" heading after collection has ended is never merged.
package criteria

import (
	"regexp"
	"strings"

	"github.com/steveyegge/backlog/internal/types"
)

// checkboxRe matches "- [ ] text" and "- [x] text" items, with optional
// leading indentation and an x of either case.
var checkboxRe = regexp.MustCompile(`^\s*-\s*\[([ xX])\]\s*(.+)$`)

type parseState int

const (
	seekingHeader parseState = iota
	collecting
	done
)

// Parse extracts the ordered acceptance-criteria list from an issue body.
// It never fails: an empty body, a missing criteria section, or malformed
// checkbox lines all simply yield fewer (or zero) items.
func Parse(body string) []types.Criterion {
	if body == "" {
		return nil
	}

	var criteria []types.Criterion
	state := seekingHeader

	for _, line := range strings.Split(body, "\n") {
		switch state {
		case seekingHeader:
			if strings.Contains(strings.ToLower(line), "acceptance criteria") {
				state = collecting
			}

		case collecting:
			if m := checkboxRe.FindStringSubmatch(line); m != nil {
				criteria = append(criteria, types.Criterion{
					Checked: strings.EqualFold(m[1], "x"),
					Text:    strings.TrimSpace(m[2]),
				})
				continue
			}
			if strings.TrimSpace(line) == "" {
				// Blank lines inside the section do not end it.
				continue
			}
			if strings.HasPrefix(line, "#") {
				// Next section started; collection never re-enters.
				state = done
				continue
			}
			// Surrounding prose is tolerated, not a terminator.

		case done:
			// Everything after the section boundary is ignored.
		}
	}

	return criteria
}
