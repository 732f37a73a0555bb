package db

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/typecast/typecast-go/lib/db/migrations"
	"github.com/typecast/typecast-go/lib/models/db"
)

type PostgresOptions struct {
	Username string
	Password string
	Host     string
	Database string
	Port     int
}

type PostgresDB struct {
	sqlDB *sql.DB
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (d PostgresDB) SaveSnapshot(snapshot db.SnapshotDB) error {
	resultedSQL, args, err := psql.
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

func (d PostgresDB) GetSnapshot(id string) (*db.SnapshotDB, error) {
	resultedSQL, args, err := psql.
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

func (d PostgresDB) ListSnapshots(path string) ([]db.SnapshotDB, error) {
	query := psql.
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

func (d PostgresDB) DeleteSnapshot(id string) error {
	resultedSQL, args, err := psql.
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

func (d PostgresDB) Ping() error {
	return d.sqlDB.Ping()
}

func (d PostgresDB) Close() error {
	return d.sqlDB.Close()
}

func NewPostgresDB(options PostgresOptions) (*PostgresDB, error) {
	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", options.Username, options.Password, options.Host, options.Port, options.Database)
	sqlDb, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, err
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectPostgres)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresDB{sqlDB: sqlDb}, nil
}

var _ DataStore = (*PostgresDB)(nil)
