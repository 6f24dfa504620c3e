package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const progressSchema = `CREATE TABLE IF NOT EXISTS progress (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	max_unlocked_stage INTEGER NOT NULL
)`

// SQLiteStore keeps progress in a single-row SQLite table.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// progress table exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", cleanPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(progressSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create progress table: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (store *SQLiteStore) Close() error {
	if store == nil || store.sqlDB == nil {
		return nil
	}
	return store.sqlDB.Close()
}

func (store *SQLiteStore) Load(ctx context.Context) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}

	var stage int
	err := store.sqlDB.QueryRowContext(ctx,
		`SELECT max_unlocked_stage FROM progress WHERE id = 1`,
	).Scan(&stage)
	if errors.Is(err, sql.ErrNoRows) {
		return Default(), nil
	}
	if err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if stage < 1 {
		return Default(), nil
	}
	return Progress{MaxUnlockedStage: stage}, nil
}

func (store *SQLiteStore) Save(ctx context.Context, progress Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := store.sqlDB.ExecContext(ctx,
		`INSERT INTO progress (id, max_unlocked_stage) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET max_unlocked_stage = excluded.max_unlocked_stage`,
		progress.MaxUnlockedStage,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
