package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typecast/typecast-go/lib/models/db"
)

func TestMemoryDataStoreSaveAndGet(t *testing.T) {
	store := NewMemoryDataStore()

	record := db.SnapshotDB{
		ID:        "snap-1",
		Path:      "main.go",
		Title:     "step 1",
		Content:   "package main\n",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveSnapshot(record))

	loaded, err := store.GetSnapshot("snap-1")
	require.NoError(t, err)
	assert.Equal(t, record, *loaded)
}

func TestMemoryDataStoreGetMissing(t *testing.T) {
	store := NewMemoryDataStore()

	_, err := store.GetSnapshot("nope")
	require.Error(t, err)
	assert.Equal(t, SnapshotDoesNotExistError, err.Error())
}

func TestMemoryDataStoreListOrderedByCreation(t *testing.T) {
	store := NewMemoryDataStore()
	base := time.Now().UTC()

	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "c", Path: "a.go", CreatedAt: base.Add(2 * time.Second)}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "a", Path: "a.go", CreatedAt: base}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "b", Path: "b.go", CreatedAt: base.Add(time.Second)}))

	all, err := store.ListSnapshots("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)

	filtered, err := store.ListSnapshots("a.go")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)
}

func TestMemoryDataStoreListTieBreaksOnID(t *testing.T) {
	store := NewMemoryDataStore()
	at := time.Now().UTC()

	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "b", CreatedAt: at}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "a", CreatedAt: at}))

	all, err := store.ListSnapshots("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
}

func TestMemoryDataStoreDelete(t *testing.T) {
	store := NewMemoryDataStore()
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "snap-1"}))

	require.NoError(t, store.DeleteSnapshot("snap-1"))

	err := store.DeleteSnapshot("snap-1")
	require.Error(t, err)
	assert.Equal(t, SnapshotDoesNotExistError, err.Error())
}

func TestMemoryDataStoreSaveOverwrites(t *testing.T) {
	store := NewMemoryDataStore()
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "snap-1", Content: "v1"}))
	require.NoError(t, store.SaveSnapshot(db.SnapshotDB{ID: "snap-1", Content: "v2"}))

	loaded, err := store.GetSnapshot("snap-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", loaded.Content)
}
