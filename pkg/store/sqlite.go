package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/errors"
)

// SQLiteStore persists albums in a single SQLite file. It suits serve
// deployments that want persistence without running a database server;
// the driver embeds its own engine, so the binary stays self-contained.
//
// Albums are stored as JSON documents: the store never queries inside an
// album, so a document column beats a normalized item table.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS albums (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`

// NewSQLiteStore opens (and if needed creates) the database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "create db dir %s", dir)
		}
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s", path)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "migrate %s", path)
	}
	return &SQLiteStore{db: db}, nil
}

// Get retrieves an album by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (album.Album, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM albums WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return album.Album{}, ErrAlbumNotFound
	}
	if err != nil {
		return album.Album{}, errors.Wrap(errors.ErrCodeStore, err, "get album %s", id)
	}

	a, err := album.UnmarshalAlbum(data)
	if err != nil {
		return album.Album{}, errors.Wrap(errors.ErrCodeStore, err, "decode album %s", id)
	}
	return a, nil
}

// Put stores an album, replacing any existing one with the same ID.
func (s *SQLiteStore) Put(ctx context.Context, a album.Album) error {
	if err := validateForPut(a); err != nil {
		return err
	}

	data, err := album.MarshalAlbum(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode album %s", a.ID)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO albums (id, data) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		a.ID, data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "put album %s", a.ID)
	}
	return nil
}

// Delete removes an album.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete album %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// List returns the stored album IDs, sorted.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM albums ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list albums")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "scan album id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list albums")
	}
	return ids, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
