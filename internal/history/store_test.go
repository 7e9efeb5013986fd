package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/bookbinder/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	older := &Build{
		StartedAt:  base,
		FinishedAt: base.Add(2 * time.Second),
		Input:      "/book",
		Output:     "/out",
		Formats:    []string{"markdown", "pdf"},
		Chapters:   4,
		Images:     1,
		Pages:      7,
	}
	newer := &Build{
		ID:         "fixed-id",
		StartedAt:  base.Add(time.Hour),
		FinishedAt: base.Add(time.Hour + time.Second),
		Input:      "/book",
		Output:     "/out",
		Status:     StatusFailed,
		Error:      "render pdf: boom",
	}
	require.NoError(t, store.Record(ctx, older))
	require.NoError(t, store.Record(ctx, newer))

	assert.NotEmpty(t, older.ID, "missing id is generated")
	assert.Equal(t, StatusSuccess, older.Status)

	builds, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, builds, 2)

	assert.Equal(t, "fixed-id", builds[0].ID)
	assert.Equal(t, StatusFailed, builds[0].Status)
	assert.Equal(t, "render pdf: boom", builds[0].Error)
	assert.Nil(t, builds[0].Formats)

	got := builds[1]
	assert.Equal(t, older.ID, got.ID)
	assert.True(t, got.StartedAt.Equal(base))
	assert.Equal(t, 2*time.Second, got.Duration())
	assert.Equal(t, []string{"markdown", "pdf"}, got.Formats)
	assert.Equal(t, 4, got.Chapters)
	assert.Equal(t, 1, got.Images)
	assert.Equal(t, 7, got.Pages)

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "fixed-id", limited[0].ID)
}

func TestRecord_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Record(ctx, &Build{ID: "a", StartedAt: now, FinishedAt: now}))
	assert.Error(t, store.Record(ctx, &Build{ID: "a", StartedAt: now, FinishedAt: now}))
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, &Build{StartedAt: time.Now(), FinishedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	builds, err := reopened.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, builds, 1)
}

func TestNewStore_InMemory(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(context.Background(), &Build{StartedAt: time.Now(), FinishedAt: time.Now()}))
	builds, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, builds, 1)
}

func TestFromResult(t *testing.T) {
	started := time.Now().Add(-time.Minute)

	t.Run("success", func(t *testing.T) {
		b := FromResult(&models.BuildResult{
			ID:       "run-1",
			Input:    "/abs/in",
			Output:   "/abs/out",
			Chapters: 3,
			Images:   2,
			Pages:    5,
		}, "in", "out", []string{"markdown"}, started, nil)

		assert.Equal(t, "run-1", b.ID)
		assert.Equal(t, "/abs/in", b.Input)
		assert.Equal(t, "/abs/out", b.Output)
		assert.Equal(t, 5, b.Pages)
		assert.Equal(t, StatusSuccess, b.Status)
		assert.Empty(t, b.Error)
		assert.False(t, b.FinishedAt.Before(started))
	})

	t.Run("failed before any output", func(t *testing.T) {
		b := FromResult(nil, "in", "out", nil, started, errors.New("output is not empty"))

		assert.Empty(t, b.ID)
		assert.Equal(t, "in", b.Input)
		assert.Equal(t, StatusFailed, b.Status)
		assert.Equal(t, "output is not empty", b.Error)
	})
}
