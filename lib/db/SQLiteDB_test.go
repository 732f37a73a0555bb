package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typecast/typecast-go/lib/models/db"
)

func newTestSQLiteDB(t *testing.T) *SQLiteDB {
	t.Helper()
	store, err := NewSQLiteDB(t.TempDir() + "/typecast.db")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSQLiteSaveAndGet(t *testing.T) {
	store := newTestSQLiteDB(t)
	createdAt := time.Now().UTC().Truncate(time.Second)

	record := db.SnapshotDB{
		ID:        "snap-1",
		Path:      "main.go",
		Title:     "step 1",
		Content:   "package main\n",
		CreatedAt: createdAt,
	}
	require.NoError(t, store.SaveSnapshot(record))

	loaded, err := store.GetSnapshot("snap-1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.Path, loaded.Path)
	assert.Equal(t, record.Title, loaded.Title)
	assert.Equal(t, record.Content, loaded.Content)
	assert.WithinDuration(t, createdAt, loaded.CreatedAt, time.Second)
}

func TestSQLiteGetMissing(t *testing.T) {
	store := newTestSQLiteDB(t)

	_, err := store.GetSnapshot("nope")
	require.Error(t, err)
	assert.Equal(t, SnapshotDoesNotExistError, err.Error())
}

func TestSQLiteSaveUpserts(t *testing.T) {
	store := newTestSQLiteDB(t)

	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "snap-1", Path: "a.go", Content: "v1", CreatedAt: time.Now().UTC()}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "snap-1", Path: "a.go", Content: "v2", CreatedAt: time.Now().UTC()}))

	loaded, err := store.GetSnapshot("snap-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", loaded.Content)

	all, err := store.ListSnapshots("")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteListFiltersAndOrders(t *testing.T) {
	store := newTestSQLiteDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "b", Path: "a.go", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "a", Path: "a.go", CreatedAt: base}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "c", Path: "b.go", CreatedAt: base.Add(2 * time.Second)}))

	all, err := store.ListSnapshots("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)

	filtered, err := store.ListSnapshots("a.go")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestSQLiteDelete(t *testing.T) {
	store := newTestSQLiteDB(t)
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "snap-1", CreatedAt: time.Now().UTC()}))

	require.NoError(t, store.DeleteSnapshot("snap-1"))

	err := store.DeleteSnapshot("snap-1")
	require.Error(t, err)
	assert.Equal(t, SnapshotDoesNotExistError, err.Error())
}

func TestSQLitePing(t *testing.T) {
	store := newTestSQLiteDB(t)
	require.NoError(t, store.Ping())
}
