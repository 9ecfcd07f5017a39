package types

// Label prefixes for the fixed backlog vocabulary. Attributes are encoded as
// flat labels like "epic:payments" or "priority:high".
const (
	// PrefixEpic groups issues under an epic, e.g. "epic:booking-payment".
	PrefixEpic = "epic:"

	// PrefixPriority carries the priority tier, e.g. "priority:critical".
	PrefixPriority = "priority:"

	// PrefixStatus carries the workflow status, e.g. "status:backlog".
	PrefixStatus = "status:"

	// PrefixType categorizes the work, e.g. "type:feature".
	PrefixType = "type:"
)

// Status labels the reconciler knows how to map onto a project board.
// Any other status:* label is carried on the Issue but never synced.
const (
	LabelStatusBacklog    = "status:backlog"
	LabelStatusInProgress = "status:in-progress"
	LabelStatusDone       = "status:done"
)

// StatusLabels lists the syncable status labels in scan order.
func StatusLabels() []string {
	return []string{LabelStatusBacklog, LabelStatusInProgress, LabelStatusDone}
}

// Priority tiers in cascade order: a single critical issue, however old,
// is always preferred over any number of lower-tier issues.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Priorities returns the priority cascade in selection order.
func Priorities() []string {
	return []string{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// KnownPriority reports whether p is one of the four selectable tiers.
// Other values are accepted on labels but never selected by the cascade.
func KnownPriority(p string) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
