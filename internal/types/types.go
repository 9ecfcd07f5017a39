package types

// Issue is the projected, in-memory view of a tracker issue. It is rebuilt
// from the tracker on every fetch and never persisted; labels on the tracker
// and the project board's status field are the only durable truth.
type Issue struct {
	Number             int         `json:"number"`
	Title              string      `json:"title"`
	Body               string      `json:"body"`
	Labels             []string    `json:"labels"`
	AcceptanceCriteria []Criterion `json:"acceptance_criteria"`
	Epic               string      `json:"epic,omitempty"`
	Priority           string      `json:"priority,omitempty"`
	Status             string      `json:"status,omitempty"`
	Type               string      `json:"type,omitempty"`
	Assignees          []string    `json:"assignees"`
	Milestone          string      `json:"milestone,omitempty"`
	State              State       `json:"state"`
	URL                string      `json:"url"`
}

// Criterion is a single acceptance-criteria checklist item, in body order.
type Criterion struct {
	Checked bool   `json:"checked"`
	Text    string `json:"text"`
}

// State represents the tracker's open/closed state for an issue.
// Values match the tracker's JSON output.
type State string

const (
	StateOpen   State = "OPEN"
	StateClosed State = "CLOSED"
)

// IssueType values recognized in type: labels. Unknown values are carried
// through unchanged; only branch-prefix derivation cares about these.
const (
	TypeFeature  = "feature"
	TypeBug      = "bug"
	TypeDocs     = "docs"
	TypeTechDebt = "tech-debt"
)
