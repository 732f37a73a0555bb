// Package snapshot manages the captured document states a presenter can
// replay. The store is an explicit object handed to whoever needs it; the
// replay core never sees it, it only ever receives one target string.
package snapshot

import (
	"time"

	"github.com/google/uuid"
	"github.com/typecast/typecast-go/lib/db"
	"github.com/typecast/typecast-go/lib/exception"
	dbModels "github.com/typecast/typecast-go/lib/models/db"
)

// Snapshot is a captured state of one document.
type Snapshot struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists snapshots through a DataStore backend.
type Store struct {
	data db.DataStore
}

// NewStore creates a snapshot store on top of the given backend.
func NewStore(data db.DataStore) *Store {
	return &Store{data: data}
}

// Save captures content as a new snapshot of the document at path.
func (s *Store) Save(path string, title string, content string) (*Snapshot, error) {
	snapshot := Snapshot{
		ID:        uuid.NewString(),
		Path:      path,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.data.SaveSnapshot(toRecord(snapshot)); err != nil {
		return nil, exception.NewDatabaseError("error saving snapshot", err)
	}
	return &snapshot, nil
}

// Get returns the snapshot with the given id.
func (s *Store) Get(id string) (*Snapshot, error) {
	record, err := s.data.GetSnapshot(id)
	if err != nil {
		if err.Error() == db.SnapshotDoesNotExistError {
			return nil, exception.NewSnapshotNotFoundError(id)
		}
		return nil, exception.NewDatabaseError("error loading snapshot", err)
	}
	snapshot := fromRecord(*record)
	return &snapshot, nil
}

// List returns the snapshots of the document at path in capture order. An
// empty path lists every snapshot.
func (s *Store) List(path string) ([]Snapshot, error) {
	records, err := s.data.ListSnapshots(path)
	if err != nil {
		return nil, exception.NewDatabaseError("error listing snapshots", err)
	}
	var snapshots = make([]Snapshot, 0, len(records))
	for _, record := range records {
		snapshots = append(snapshots, fromRecord(record))
	}
	return snapshots, nil
}

// Delete removes the snapshot with the given id.
func (s *Store) Delete(id string) error {
	if err := s.data.DeleteSnapshot(id); err != nil {
		if err.Error() == db.SnapshotDoesNotExistError {
			return exception.NewSnapshotNotFoundError(id)
		}
		return exception.NewDatabaseError("error deleting snapshot", err)
	}
	return nil
}

func toRecord(snapshot Snapshot) dbModels.SnapshotDB {
	return dbModels.SnapshotDB{
		ID:        snapshot.ID,
		Path:      snapshot.Path,
		Title:     snapshot.Title,
		Content:   snapshot.Content,
		CreatedAt: snapshot.CreatedAt,
	}
}

func fromRecord(record dbModels.SnapshotDB) Snapshot {
	return Snapshot{
		ID:        record.ID,
		Path:      record.Path,
		Title:     record.Title,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
	}
}
