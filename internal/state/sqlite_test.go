package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot(name string, created time.Time) *Snapshot {
	return &Snapshot{
		SnapshotInfo: SnapshotInfo{
			Name:      name,
			Source:    "https://www.figma.com/design/KEY/Card?node-id=1-2",
			NodeID:    "1:2",
			Width:     400,
			Height:    200,
			NodeCount: 3,
			CreatedAt: created,
		},
		Document: []byte(`{"id":"1:2","type":"FRAME"}`),
		Bitmap:   []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	assert.NoError(t, store.Close())
}

func TestSQLiteStore_OpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	store := NewSQLiteStore()
	require.NoError(t, store.Open(path))
	assert.Equal(t, path, store.Path())
	require.NoError(t, store.SaveSnapshot(context.Background(), testSnapshot("card", time.Time{})))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore()
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	infos, err := reopened.ListSnapshots(context.Background())
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()
	ctx := context.Background()

	assert.Error(t, store.Migrate())
	assert.Error(t, store.SaveSnapshot(ctx, testSnapshot("x", time.Time{})))
	_, err := store.GetSnapshot(ctx, "x")
	assert.Error(t, err)
	_, err = store.ListSnapshots(ctx)
	assert.Error(t, err)
	assert.Error(t, store.DeleteSnapshot(ctx, "x"))
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_SnapshotRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snap := testSnapshot("card", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveSnapshot(ctx, snap))
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "png", snap.Format)

	got, err := store.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSQLiteStore_SaveDefaults(t *testing.T) {
	store := setupTestStore(t)

	snap := testSnapshot("card", time.Time{})
	snap.ID = "fixed"
	snap.Format = "svg"
	require.NoError(t, store.SaveSnapshot(context.Background(), snap))

	assert.Equal(t, "fixed", snap.ID)
	assert.Equal(t, "svg", snap.Format)
	assert.False(t, snap.CreatedAt.IsZero())

	err := store.SaveSnapshot(context.Background(), snap)
	assert.ErrorContains(t, err, "failed to save snapshot", "duplicate id")
}

func TestSQLiteStore_ListSnapshots(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "new", "mid"} {
		offset := map[int]time.Duration{0: 0, 1: 2 * time.Hour, 2: time.Hour}[i]
		require.NoError(t, store.SaveSnapshot(ctx, testSnapshot(name, base.Add(offset))))
	}

	infos, err = store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "new", infos[0].Name)
	assert.Equal(t, "mid", infos[1].Name)
	assert.Equal(t, "old", infos[2].Name)
	assert.Equal(t, 3, infos[0].NodeCount)
}

func TestSQLiteStore_DeleteSnapshot(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snap := testSnapshot("card", time.Time{})
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	require.NoError(t, store.DeleteSnapshot(ctx, snap.ID))

	_, err := store.GetSnapshot(ctx, snap.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, store.DeleteSnapshot(ctx, snap.ID), ErrSnapshotNotFound)
}

func TestSQLiteStore_DatabaseErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(store *SQLiteStore) error
		errMsg    string
		// scan failures come from database/sql, not the driver
		noCause   bool
	}{
		{
			name: "save",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO snapshots").WillReturnError(assert.AnError)
			},
			run: func(store *SQLiteStore) error {
				return store.SaveSnapshot(ctx, testSnapshot("x", time.Time{}))
			},
			errMsg: "failed to save snapshot",
		},
		{
			name: "get",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM snapshots WHERE id").WillReturnError(assert.AnError)
			},
			run: func(store *SQLiteStore) error {
				_, err := store.GetSnapshot(ctx, "x")
				return err
			},
			errMsg: "failed to get snapshot",
		},
		{
			name: "list",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM snapshots").WillReturnError(assert.AnError)
			},
			run: func(store *SQLiteStore) error {
				_, err := store.ListSnapshots(ctx)
				return err
			},
			errMsg: "failed to list snapshots",
		},
		{
			name: "list scan",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM snapshots").WillReturnRows(
					sqlmock.NewRows([]string{"id"}).AddRow("only-one-column"),
				)
			},
			run: func(store *SQLiteStore) error {
				_, err := store.ListSnapshots(ctx)
				return err
			},
			errMsg:  "failed to scan snapshot",
			noCause: true,
		},
		{
			name: "delete",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM snapshots").WillReturnError(assert.AnError)
			},
			run: func(store *SQLiteStore) error {
				return store.DeleteSnapshot(ctx, "x")
			},
			errMsg: "failed to delete snapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = tt.run(NewWithDB(db))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			if !tt.noCause {
				assert.ErrorIs(t, err, assert.AnError)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
