package reconciler

import (
	"github.com/steveyegge/backlog/internal/gh"
	"github.com/steveyegge/backlog/internal/types"
)

// DefaultAliases maps each syncable status label to the board option names
// that satisfy it, in resolution order. Boards rename their columns; an
// alias list survives "Todo" vs "Backlog" without a code change. Overridable
// from the config file.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		types.LabelStatusBacklog:    {"Todo", "Backlog"},
		types.LabelStatusInProgress: {"In Progress", "In progress"},
		types.LabelStatusDone:       {"Done"},
	}
}

// ResolveTargets binds the alias table to a board's live option map,
// yielding status label → option id. Labels whose aliases all miss are left
// out of the result; the reconcile loop reports them as errors per item.
func ResolveTargets(field *gh.StatusField, aliases map[string][]string) map[string]string {
	targets := make(map[string]string)
	for label, names := range aliases {
		for _, name := range names {
			if id, ok := field.Options[name]; ok {
				targets[label] = id
				break
			}
		}
	}
	return targets
}
