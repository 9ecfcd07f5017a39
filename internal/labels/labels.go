// Package labels encodes and decodes backlog attributes to and from the flat
// label vocabulary (epic:, priority:, status:, type:).
package labels

import (
	"strings"

	"github.com/steveyegge/backlog/internal/types"
)

// Decode scans labelList for the first label starting with prefix and returns
// the suffix after the prefix. When multiple labels share a prefix the first
// occurrence wins; later duplicates are ignored. The suffix is not validated
// here; that is the caller's concern.
func Decode(labelList []string, prefix string) (string, bool) {
	for _, l := range labelList {
		if strings.HasPrefix(l, prefix) {
			return l[len(prefix):], true
		}
	}
	return "", false
}

// Encode joins a prefix and value into a label, e.g. ("priority:", "high")
// becomes "priority:high".
func Encode(prefix, value string) string {
	return prefix + value
}

// StatusLabel finds the first syncable status label on the issue, scanning
// labelList in order against the fixed status-label set. Returns false when
// the issue carries no syncable status label.
func StatusLabel(labelList []string) (string, bool) {
	for _, l := range labelList {
		for _, s := range types.StatusLabels() {
			if l == s {
				return l, true
			}
		}
	}
	return "", false
}
