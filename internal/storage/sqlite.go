package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	version    INTEGER NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// SQLiteSlotStore keeps slots in a local SQLite file.
type SQLiteSlotStore struct {
	db *sql.DB
}

// NewSQLiteSlotStore opens (or creates) the database at path. The caller is
// responsible for calling Close.
func NewSQLiteSlotStore(path string) (*SQLiteSlotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteSlotStore{db: db}, nil
}

func (s *SQLiteSlotStore) Close() error { return s.db.Close() }

func (s *SQLiteSlotStore) Get(ctx context.Context, key string) (Record, error) {
	var (
		value   string
		version int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT value, version FROM kv_slots WHERE key = ?`, key).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrSlotNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("select slot %s: %w", key, err)
	}
	return Record{Value: []byte(value), Version: version}, nil
}

func (s *SQLiteSlotStore) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var (
		res sql.Result
		err error
	)
	now := time.Now().UTC()
	if expected == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO kv_slots (key, value, version, updated_at) VALUES (?, ?, 1, ?)
			ON CONFLICT(key) DO NOTHING`,
			key, string(value), now,
		)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE kv_slots SET value = ?, version = version + 1, updated_at = ?
			WHERE key = ? AND version = ?`,
			string(value), now, key, expected,
		)
	}
	if err != nil {
		return 0, fmt.Errorf("write slot %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("write slot %s: %w", key, err)
	}
	if n == 0 {
		return 0, ErrVersionConflict
	}
	return expected + 1, nil
}
