package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/typecast/typecast-go/lib/db/migrations"
	"github.com/typecast/typecast-go/lib/models/db"
	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	path  string
	sqlDB *sql.DB
}

func (d SQLiteDB) SaveSnapshot(snapshot db.SnapshotDB) error {
	resultedSQL, args, err := sq.
		Insert("snapshot").
		Columns("id", "path", "title", "content", "created_at").
		Values(snapshot.ID, snapshot.Path, snapshot.Title, snapshot.Content, snapshot.CreatedAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			title = excluded.title,
			content = excluded.content`).
		ToSql()

	if err != nil {
		return err
	}

	_, err = d.sqlDB.Exec(resultedSQL, args...)
	return err
}

func (d SQLiteDB) GetSnapshot(id string) (*db.SnapshotDB, error) {
	resultedSQL, args, err := sq.
		Select("id", "path", "title", "content", "created_at").
		From("snapshot").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, err
	}

	row := d.sqlDB.QueryRow(resultedSQL, args...)

	var snapshot db.SnapshotDB
	var createdAt sql.NullTime

	err = row.Scan(&snapshot.ID, &snapshot.Path, &snapshot.Title, &snapshot.Content, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(SnapshotDoesNotExistError)
		}
		return nil, err
	}

	if createdAt.Valid {
		snapshot.CreatedAt = createdAt.Time
	}

	return &snapshot, nil
}

func (d SQLiteDB) ListSnapshots(path string) ([]db.SnapshotDB, error) {
	query := sq.
		Select("id", "path", "title", "content", "created_at").
		From("snapshot").
		OrderBy("created_at ASC", "id ASC")

	if path != "" {
		query = query.Where(sq.Eq{"path": path})
	}

	resultedSQL, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.Query(resultedSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots = make([]db.SnapshotDB, 0)
	for rows.Next() {
		var snapshot db.SnapshotDB
		var createdAt sql.NullTime
		if err := rows.Scan(&snapshot.ID, &snapshot.Path, &snapshot.Title, &snapshot.Content, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			snapshot.CreatedAt = createdAt.Time
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

func (d SQLiteDB) DeleteSnapshot(id string) error {
	resultedSQL, args, err := sq.
		Delete("snapshot").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := d.sqlDB.Exec(resultedSQL, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New(SnapshotDoesNotExistError)
	}
	return nil
}

func (d SQLiteDB) Ping() error {
	return d.sqlDB.Ping()
}

func (d SQLiteDB) Close() error {
	return d.sqlDB.Close()
}

// NewSQLiteDB creates a new SQLiteDB and returns a pointer to it.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	if path == ":memory" {
		path = "file::memory:?cache=shared"
	}

	sqlDb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if strings.Contains(path, ":memory:") {
		sqlDb.SetMaxOpenConns(1)
	}

	if _, err = sqlDb.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDb.Close()
		return nil, err
	}
	if _, err = sqlDb.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		sqlDb.Close()
		return nil, err
	}
	if _, err = sqlDb.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDb.Close()
		return nil, err
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectSQLite)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteDB{
		path:  path,
		sqlDB: sqlDb,
	}, nil
}

var _ DataStore = (*SQLiteDB)(nil)
