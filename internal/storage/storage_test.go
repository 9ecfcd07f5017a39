package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.RecordRun(ctx, &SyncRun{
			ID:            string(rune('a' + i)),
			ProjectNumber: 4,
			StartIssue:    1,
			EndIssue:      5,
			Updated:       2,
			Skipped:       1,
			Errors:        2,
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			FinishedAt:    base.Add(time.Duration(i)*time.Hour + time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, 2, runs[0].Updated)
	assert.Equal(t, 1, runs[0].Skipped)
	assert.Equal(t, 2, runs[0].Errors)
}

func TestRecentRunsEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecentRunsDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &SyncRun{
		ID:         "only",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}))

	runs, err := store.RecentRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
