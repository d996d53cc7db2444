// Package sqlite persists device bindings in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/semdex/auth-service/devices"
	_ "modernc.org/sqlite"
)

var _ devices.Repo = (*Store)(nil)

// Store is a SQLite-backed device-binding store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the binding store at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	schema := `CREATE TABLE IF NOT EXISTS device_bindings (
		device_id TEXT PRIMARY KEY,
		user_id   INTEGER NOT NULL
	)`
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, deviceID string) (int64, error) {
	var userID int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id FROM device_bindings WHERE device_id = ?`, deviceID,
	).Scan(&userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return 0, devices.NotRegisteredErr
		}
		return 0, fmt.Errorf("%w: %v", devices.StoreUnavailableErr, err)
	}
	return userID, nil
}

func (s *Store) Bind(ctx context.Context, deviceID string, userID int64) error {
	if strings.TrimSpace(deviceID) == "" {
		return fmt.Errorf("device id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO device_bindings (device_id, user_id) VALUES (?, ?)
		 ON CONFLICT (device_id) DO UPDATE SET user_id = excluded.user_id`,
		deviceID, userID,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", devices.StoreUnavailableErr, err)
	}
	return nil
}
