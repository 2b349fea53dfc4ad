package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SessionsRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionsRepo(db)
}

func entryAt(i int, createdAt time.Time) core.SessionEntry {
	return core.SessionEntry{
		SessionID: fmt.Sprintf("diag_2026_%04d", i),
		Timestamp: "20260102_030405",
		Patient:   fmt.Sprintf("patient %d", i),
		JSONPath:  fmt.Sprintf("/logs/diag_%d.json", i),
		TXTPath:   fmt.Sprintf("/logs/diag_%d.txt", i),
		CreatedAt: createdAt,
	}
}

func TestAddGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := entryAt(1, time.Now().UTC())
	require.NoError(t, repo.Add(ctx, want))

	got, err := repo.Get(ctx, want.SessionID)
	require.NoError(t, err)
	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Patient, got.Patient)
	assert.Equal(t, want.JSONPath, got.JSONPath)
	assert.Equal(t, want.TXTPath, got.TXTPath)
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "diag_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAdd_DuplicateSessionID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	entry := entryAt(1, time.Now().UTC())
	require.NoError(t, repo.Add(ctx, entry))
	assert.Error(t, repo.Add(ctx, entry))
}

func TestListRecent_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Add(ctx, entryAt(i, base.Add(time.Duration(i)*time.Minute))))
	}

	entries, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "diag_2026_0004", entries[0].SessionID)
	assert.Equal(t, "diag_2026_0003", entries[1].SessionID)
	assert.Equal(t, "diag_2026_0002", entries[2].SessionID)
}

func TestListBeyond_ReturnsOnlyExpired(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Add(ctx, entryAt(i, base.Add(time.Duration(i)*time.Minute))))
	}

	expired, err := repo.ListBeyond(ctx, 2)
	require.NoError(t, err)
	require.Len(t, expired, 3)
	// The two newest survive; the rest come back newest-first.
	assert.Equal(t, "diag_2026_0002", expired[0].SessionID)
	assert.Equal(t, "diag_2026_0001", expired[1].SessionID)
	assert.Equal(t, "diag_2026_0000", expired[2].SessionID)

	none, err := repo.ListBeyond(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	entry := entryAt(1, time.Now().UTC())
	require.NoError(t, repo.Add(ctx, entry))
	require.NoError(t, repo.Delete(ctx, entry.SessionID))

	_, err := repo.Get(ctx, entry.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an absent row is not an error.
	assert.NoError(t, repo.Delete(ctx, entry.SessionID))
}
