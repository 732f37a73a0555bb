package snapshot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typecast/typecast-go/lib/db"
	"github.com/typecast/typecast-go/lib/exception"
)

func TestStoreSaveAssignsIDAndTimestamp(t *testing.T) {
	store := NewStore(db.NewMemoryDataStore())

	saved, err := store.Save("main.go", "first capture", "package main\n")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, "main.go", saved.Path)
	assert.Equal(t, "first capture", saved.Title)
	assert.Equal(t, "package main\n", saved.Content)

	loaded, err := store.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, *saved, *loaded)
}

func TestStoreGetMissingMapsToNotFound(t *testing.T) {
	store := NewStore(db.NewMemoryDataStore())

	_, err := store.Get("does-not-exist")
	require.Error(t, err)

	var notFound *exception.SnapshotNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestStoreListFiltersByPath(t *testing.T) {
	store := NewStore(db.NewMemoryDataStore())

	_, err := store.Save("a.go", "", "one")
	require.NoError(t, err)
	_, err = store.Save("b.go", "", "two")
	require.NoError(t, err)
	_, err = store.Save("a.go", "", "three")
	require.NoError(t, err)

	all, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := store.List("a.go")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, s := range filtered {
		assert.Equal(t, "a.go", s.Path)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(db.NewMemoryDataStore())

	saved, err := store.Save("main.go", "", "content")
	require.NoError(t, err)

	require.NoError(t, store.Delete(saved.ID))

	err = store.Delete(saved.ID)
	var notFound *exception.SnapshotNotFoundError
	assert.True(t, errors.As(err, &notFound))
}
