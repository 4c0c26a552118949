package draft

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS storage (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteBackend хранит ключи в таблице storage.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite открывает (или создаёт) базу по пути и применяет схему.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create draft db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open draft db: %w", err)
	}
	// Один писатель: черновик пишет только UI цикл
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init draft db schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Get реализует Backend.
func (s *SQLiteBackend) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM storage WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select draft: %w", err)
	}
	return v, true, nil
}

// Set реализует Backend.
func (s *SQLiteBackend) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO storage (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

// Close реализует Backend.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
