package db

import "time"

// SnapshotDB is the stored form of a captured document snapshot.
type SnapshotDB struct {
	ID        string
	Path      string
	Title     string
	Content   string
	CreatedAt time.Time
}
