package db

import (
	"errors"
	"sort"
	"sync"

	"github.com/typecast/typecast-go/lib/models/db"
)

type MemoryDataStore struct {
	mu            sync.RWMutex
	snapshotStore map[string]db.SnapshotDB
}

func NewMemoryDataStore() *MemoryDataStore {
	return &MemoryDataStore{
		snapshotStore: make(map[string]db.SnapshotDB),
	}
}

func (m *MemoryDataStore) SaveSnapshot(snapshot db.SnapshotDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotStore[snapshot.ID] = snapshot
	return nil
}

func (m *MemoryDataStore) GetSnapshot(id string) (*db.SnapshotDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var retrievedSnapshot, ok = m.snapshotStore[id]
	if !ok {
		return nil, errors.New(SnapshotDoesNotExistError)
	}
	return &retrievedSnapshot, nil
}

func (m *MemoryDataStore) ListSnapshots(path string) ([]db.SnapshotDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var snapshots = make([]db.SnapshotDB, 0)
	for _, snapshot := range m.snapshotStore {
		if path == "" || snapshot.Path == path {
			snapshots = append(snapshots, snapshot)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].ID < snapshots[j].ID
		}
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}

func (m *MemoryDataStore) DeleteSnapshot(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshotStore[id]; !ok {
		return errors.New(SnapshotDoesNotExistError)
	}
	delete(m.snapshotStore, id)
	return nil
}

func (m *MemoryDataStore) Ping() error {
	return nil
}

func (m *MemoryDataStore) Close() error {
	return nil
}

var _ DataStore = (*MemoryDataStore)(nil)
