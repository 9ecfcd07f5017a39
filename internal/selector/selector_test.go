package selector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/backlog/internal/gh"
)

// fakeTracker serves canned candidate lists keyed by the priority label and
// records every query's label filters.
type fakeTracker struct {
	byPriority map[string][]gh.IssueSummary
	queries    [][]string
	err        error
}

func (f *fakeTracker) ListIssues(ctx context.Context, opts gh.ListOptions) ([]gh.IssueSummary, error) {
	f.queries = append(f.queries, opts.Labels)
	if f.err != nil {
		return nil, f.err
	}
	return f.byPriority[opts.Labels[0]], nil
}

func summary(number int, created string) gh.IssueSummary {
	ts, _ := time.Parse(time.RFC3339, created)
	return gh.IssueSummary{Number: number, CreatedAt: ts}
}

func TestNextReturnsOldestCandidate(t *testing.T) {
	tracker := &fakeTracker{byPriority: map[string][]gh.IssueSummary{
		"priority:high": {
			summary(3, "2025-01-01T00:00:00Z"),
			summary(9, "2025-06-01T00:00:00Z"),
		},
	}}

	issue, err := New(tracker).Next(context.Background(), "high", "", "backlog")
	require.NoError(t, err)
	assert.Equal(t, 3, issue.Number)

	require.Len(t, tracker.queries, 1)
	assert.Equal(t, []string{"priority:high", "status:backlog"}, tracker.queries[0])
}

func TestNextIncludesEpicFilter(t *testing.T) {
	tracker := &fakeTracker{}

	_, err := New(tracker).Next(context.Background(), "low", "search", "backlog")
	assert.ErrorIs(t, err, ErrNoMatch)

	require.Len(t, tracker.queries, 1)
	assert.Equal(t, []string{"priority:low", "status:backlog", "epic:search"}, tracker.queries[0])
}

func TestNextExplicitPriorityDoesNotFallBack(t *testing.T) {
	tracker := &fakeTracker{byPriority: map[string][]gh.IssueSummary{
		"priority:critical": {summary(1, "2025-01-01T00:00:00Z")},
	}}

	_, err := New(tracker).Next(context.Background(), "low", "", "backlog")
	assert.ErrorIs(t, err, ErrNoMatch)

	// Exactly one tier queried: the empty low tier is final.
	require.Len(t, tracker.queries, 1)
	assert.Equal(t, []string{"priority:low", "status:backlog"}, tracker.queries[0])
}

func TestNextWithFallbackStopsAtFirstNonEmptyTier(t *testing.T) {
	tracker := &fakeTracker{byPriority: map[string][]gh.IssueSummary{
		"priority:medium": {
			summary(14, "2024-11-01T00:00:00Z"),
			summary(20, "2025-02-01T00:00:00Z"),
		},
		"priority:low": {summary(2, "2020-01-01T00:00:00Z")},
	}}

	issue, err := New(tracker).NextWithFallback(context.Background(), "", "backlog")
	require.NoError(t, err)
	assert.Equal(t, 14, issue.Number)

	// critical and high were tried and empty; low was never consulted.
	require.Len(t, tracker.queries, 3)
	assert.Equal(t, "priority:critical", tracker.queries[0][0])
	assert.Equal(t, "priority:high", tracker.queries[1][0])
	assert.Equal(t, "priority:medium", tracker.queries[2][0])
}

func TestNextWithFallbackExhausted(t *testing.T) {
	tracker := &fakeTracker{}

	_, err := New(tracker).NextWithFallback(context.Background(), "", "backlog")
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, tracker.queries, 4)
}

func TestTransportErrorAbortsCascade(t *testing.T) {
	transportErr := errors.New("gh issue list failed: exit status 1")
	tracker := &fakeTracker{err: transportErr}

	_, err := New(tracker).NextWithFallback(context.Background(), "", "backlog")
	assert.ErrorIs(t, err, transportErr)
	assert.Len(t, tracker.queries, 1)
}
