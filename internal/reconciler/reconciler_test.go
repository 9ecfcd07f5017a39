package reconciler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/backlog/internal/gh"
)

type fakeTracker struct {
	labels map[int][]string
	fail   map[int]error
}

func (f *fakeTracker) IssueLabels(ctx context.Context, number int) ([]string, error) {
	if err := f.fail[number]; err != nil {
		return nil, err
	}
	return f.labels[number], nil
}

type update struct {
	itemID, optionID string
}

type fakeBoard struct {
	items     map[int][]gh.BoardItem
	itemErr   map[int]error
	updateErr map[string]error
	updates   []update
}

func (f *fakeBoard) ItemsForIssue(ctx context.Context, number int) ([]gh.BoardItem, error) {
	if err := f.itemErr[number]; err != nil {
		return nil, err
	}
	return f.items[number], nil
}

func (f *fakeBoard) UpdateItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	if err := f.updateErr[itemID]; err != nil {
		return err
	}
	f.updates = append(f.updates, update{itemID: itemID, optionID: optionID})
	return nil
}

func testField() *gh.StatusField {
	return &gh.StatusField{
		ID: "F_status",
		Options: map[string]string{
			"Todo":        "opt-todo",
			"In Progress": "opt-wip",
			"Done":        "opt-done",
		},
	}
}

func testConfig(board *gh.StatusField) Config {
	return Config{
		ProjectID:     "PVT_board",
		ProjectNumber: 4,
		Field:         board,
		Targets:       ResolveTargets(board, DefaultAliases()),
	}
}

func item(n int) []gh.BoardItem {
	return []gh.BoardItem{{ID: fmt.Sprintf("PVTI_%d", n), ProjectNumber: 4}}
}

// Five-issue range: backlog label, done label, no status label, status label
// but no board item, failing label fetch. Expected: 2 updated, 1 skipped,
// 2 errors, and the failures do not disturb their neighbors.
func TestReconcileMixedRange(t *testing.T) {
	tracker := &fakeTracker{
		labels: map[int][]string{
			1: {"status:backlog", "epic:payments"},
			2: {"status:done"},
			3: {"epic:payments"},
			4: {"status:in-progress"},
		},
		fail: map[int]error{5: errors.New("exit status 1")},
	}
	board := &fakeBoard{
		items: map[int][]gh.BoardItem{
			1: item(1),
			2: item(2),
			4: nil, // tracked issue, never added to the board
		},
	}

	r := New(tracker, board, testConfig(testField()))
	summary, err := r.Reconcile(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 5, summary.Total())
	assert.NotEmpty(t, summary.RunID)

	require.Len(t, board.updates, 2)
	assert.Equal(t, update{itemID: "PVTI_1", optionID: "opt-todo"}, board.updates[0])
	assert.Equal(t, update{itemID: "PVTI_2", optionID: "opt-done"}, board.updates[1])
}

func TestReconcileIsIdempotent(t *testing.T) {
	tracker := &fakeTracker{labels: map[int][]string{1: {"status:backlog"}}}
	board := &fakeBoard{items: map[int][]gh.BoardItem{1: item(1)}}
	r := New(tracker, board, testConfig(testField()))

	first, err := r.Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)
	second, err := r.Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)

	// Same counts both runs; the second update re-applies the same option.
	assert.Equal(t, first.Updated, second.Updated)
	require.Len(t, board.updates, 2)
	assert.Equal(t, board.updates[0], board.updates[1])
}

func TestReconcileFaultIsolation(t *testing.T) {
	tracker := &fakeTracker{
		labels: map[int][]string{
			10: {"status:backlog"},
			11: {"status:backlog"},
			12: {"status:done"},
		},
		fail: map[int]error{11: errors.New("network timeout")},
	}
	board := &fakeBoard{items: map[int][]gh.BoardItem{10: item(10), 12: item(12)}}

	var results []ItemResult
	cfg := testConfig(testField())
	cfg.Progress = func(r ItemResult) { results = append(results, r) }

	summary, err := New(tracker, board, cfg).Reconcile(context.Background(), 10, 12)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.Errors)

	require.Len(t, results, 3)
	assert.Equal(t, OutcomeUpdated, results[0].Outcome)
	assert.Equal(t, OutcomeError, results[1].Outcome)
	assert.Contains(t, results[1].Detail, "network timeout")
	assert.Equal(t, OutcomeUpdated, results[2].Outcome)
}

func TestReconcileUnresolvableOptionIsError(t *testing.T) {
	tracker := &fakeTracker{labels: map[int][]string{1: {"status:in-progress"}}}
	board := &fakeBoard{items: map[int][]gh.BoardItem{1: item(1)}}

	// Board has no option satisfying in-progress.
	field := &gh.StatusField{ID: "F_status", Options: map[string]string{"Todo": "opt-todo"}}
	cfg := testConfig(field)

	summary, err := New(tracker, board, cfg).Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Errors)
	assert.Empty(t, board.updates)
}

func TestReconcilePicksItemByProjectNumber(t *testing.T) {
	tracker := &fakeTracker{labels: map[int][]string{1: {"status:done"}}}
	board := &fakeBoard{items: map[int][]gh.BoardItem{1: {
		{ID: "PVTI_other", ProjectNumber: 9},
		{ID: "PVTI_ours", ProjectNumber: 4},
	}}}

	summary, err := New(tracker, board, testConfig(testField())).Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, board.updates, 1)
	assert.Equal(t, "PVTI_ours", board.updates[0].itemID)
}

func TestReconcileUpdateFailureCounted(t *testing.T) {
	tracker := &fakeTracker{labels: map[int][]string{1: {"status:backlog"}}}
	board := &fakeBoard{
		items:     map[int][]gh.BoardItem{1: item(1)},
		updateErr: map[string]error{"PVTI_1": errors.New("rate limited")},
	}

	summary, err := New(tracker, board, testConfig(testField())).Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 0, summary.Updated)
}

func TestResolveTargetsAliasFallback(t *testing.T) {
	field := &gh.StatusField{
		ID: "F_status",
		Options: map[string]string{
			"Backlog":     "opt-backlog", // board renamed Todo
			"In progress": "opt-wip",     // lowercase variant
			"Done":        "opt-done",
		},
	}

	targets := ResolveTargets(field, DefaultAliases())
	assert.Equal(t, "opt-backlog", targets["status:backlog"])
	assert.Equal(t, "opt-wip", targets["status:in-progress"])
	assert.Equal(t, "opt-done", targets["status:done"])
}

func TestResolveTargetsPrefersFirstAlias(t *testing.T) {
	field := &gh.StatusField{
		ID:      "F_status",
		Options: map[string]string{"Todo": "opt-todo", "Backlog": "opt-backlog"},
	}

	targets := ResolveTargets(field, DefaultAliases())
	assert.Equal(t, "opt-todo", targets["status:backlog"])
}

func TestReconcileCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracker := &fakeTracker{labels: map[int][]string{1: {"status:backlog"}}}
	board := &fakeBoard{items: map[int][]gh.BoardItem{1: item(1)}}

	summary, err := New(tracker, board, testConfig(testField())).Reconcile(ctx, 1, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Total())
}
