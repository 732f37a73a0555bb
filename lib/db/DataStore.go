package db

import "github.com/typecast/typecast-go/lib/models/db"

type SnapshotMethods interface {
	SaveSnapshot(snapshot db.SnapshotDB) error
	GetSnapshot(id string) (*db.SnapshotDB, error)
	ListSnapshots(path string) ([]db.SnapshotDB, error)
	DeleteSnapshot(id string) error
}

type DataStore interface {
	SnapshotMethods
	Ping() error
	Close() error
}
