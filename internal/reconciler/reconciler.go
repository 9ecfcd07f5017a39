// Package reconciler drives convergence between status labels on tracker
// issues and the status field of a project board.
//
// The loop is sequential and stateless: each run re-reads labels and board
// linkage from the remote systems, and every issue is isolated from its
// neighbors' failures. No retry happens within a run; re-running the
// reconciliation is the retry mechanism. Re-applying an already-synced
// mapping is a no-op on the board, so runs are safe to repeat or interrupt.
package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/steveyegge/backlog/internal/gh"
	"github.com/steveyegge/backlog/internal/labels"
)

// Tracker is the issue-tracker subset the reconciler needs.
type Tracker interface {
	IssueLabels(ctx context.Context, number int) ([]string, error)
}

// Board is the project-board subset the reconciler needs.
type Board interface {
	ItemsForIssue(ctx context.Context, number int) ([]gh.BoardItem, error)
	UpdateItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) error
}

// Outcome classifies what happened to one issue during a run.
type Outcome int

const (
	// OutcomeUpdated means the board item's status field was set.
	OutcomeUpdated Outcome = iota
	// OutcomeSkipped means the issue has no syncable status label; nothing
	// was attempted.
	OutcomeSkipped
	// OutcomeError means a step failed for this issue; the run continued.
	OutcomeError
)

// ItemResult reports one issue's outcome to the progress callback.
type ItemResult struct {
	Issue   int
	Outcome Outcome
	Detail  string
}

// Summary is the flat result of one reconciliation run.
type Summary struct {
	RunID      string
	Updated    int
	Skipped    int
	Errors     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Total returns the number of issues processed.
func (s Summary) Total() int {
	return s.Updated + s.Skipped + s.Errors
}

// Config wires a Reconciler to one board.
type Config struct {
	// ProjectID is the board's node ID (for mutations).
	ProjectID string
	// ProjectNumber picks the board item when an issue sits on several
	// boards.
	ProjectNumber int
	// Field is the board's discovered status field.
	Field *gh.StatusField
	// Targets maps status labels to option ids (see ResolveTargets).
	Targets map[string]string
	// Delay is the pause after each successful update. Skips and errors
	// are not delayed.
	Delay time.Duration
	// Progress, when set, receives one ItemResult per issue.
	Progress func(ItemResult)
}

// Reconciler converges board status fields toward issue labels.
type Reconciler struct {
	tracker Tracker
	board   Board
	cfg     Config
	limiter *rate.Limiter
}

// New creates a Reconciler. Delay 0 disables rate limiting.
func New(tracker Tracker, board Board, cfg Config) *Reconciler {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return &Reconciler{tracker: tracker, board: board, cfg: cfg, limiter: limiter}
}

// Reconcile processes issues start..end inclusive, ascending, one at a time.
// Any per-item failure is counted and the loop continues; the only way out
// early is context cancellation, which leaves already-applied updates in
// place. The returned Summary is always usable, even on early return.
func (r *Reconciler) Reconcile(ctx context.Context, start, end int) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	for number := start; number <= end; number++ {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = time.Now()
			return summary, err
		}

		result := r.reconcileOne(ctx, number)
		switch result.Outcome {
		case OutcomeUpdated:
			summary.Updated++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeError:
			summary.Errors++
		}
		if r.cfg.Progress != nil {
			r.cfg.Progress(result)
		}

		if result.Outcome == OutcomeUpdated {
			if err := r.limiter.Wait(ctx); err != nil {
				summary.FinishedAt = time.Now()
				return summary, err
			}
		}
	}

	summary.FinishedAt = time.Now()
	return summary, nil
}

// reconcileOne runs the five reconciliation steps for a single issue.
// Every failure path returns an error outcome rather than propagating, so
// one bad issue never aborts the batch.
func (r *Reconciler) reconcileOne(ctx context.Context, number int) ItemResult {
	labelList, err := r.tracker.IssueLabels(ctx, number)
	if err != nil {
		return ItemResult{Issue: number, Outcome: OutcomeError,
			Detail: fmt.Sprintf("fetching labels: %v", err)}
	}

	statusLabel, ok := labels.StatusLabel(labelList)
	if !ok {
		return ItemResult{Issue: number, Outcome: OutcomeSkipped,
			Detail: "no status label found"}
	}

	items, err := r.board.ItemsForIssue(ctx, number)
	if err != nil {
		return ItemResult{Issue: number, Outcome: OutcomeError,
			Detail: fmt.Sprintf("querying board items: %v", err)}
	}

	itemID := ""
	for _, item := range items {
		if item.ProjectNumber == r.cfg.ProjectNumber {
			itemID = item.ID
			break
		}
	}
	if itemID == "" {
		// The issue exists but is not on this board: a missing link that
		// needs attention, not a benign skip.
		return ItemResult{Issue: number, Outcome: OutcomeError,
			Detail: fmt.Sprintf("not found in project %d", r.cfg.ProjectNumber)}
	}

	optionID, ok := r.cfg.Targets[statusLabel]
	if !ok {
		return ItemResult{Issue: number, Outcome: OutcomeError,
			Detail: fmt.Sprintf("no matching status option for %s", statusLabel)}
	}

	if err := r.board.UpdateItemStatus(ctx, r.cfg.ProjectID, itemID, r.cfg.Field.ID, optionID); err != nil {
		return ItemResult{Issue: number, Outcome: OutcomeError,
			Detail: fmt.Sprintf("updating status: %v", err)}
	}

	return ItemResult{Issue: number, Outcome: OutcomeUpdated,
		Detail: fmt.Sprintf("%s → %s", statusLabel, r.cfg.Field.OptionName(optionID))}
}
