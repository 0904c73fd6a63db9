// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "SQLite Database Implementation"
//   Timestamp: "2025-11-27T09:35:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Mapped string records onto a single table keyed by content hash"
//   Principle_Applied: "Aether-Engineering-SOLID-S, Interface Implementation"
//   Quality_Check: "Unique hash constraint enforces atomic duplicate detection"
// }}

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// SQLite implements the Database interface
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements Database interface
var _ Database = (*SQLite)(nil)

// NewSQLite creates a new SQLite connection
func NewSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// A second connection to ":memory:" would see a different database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLite{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	log.Info("SQLite connected")
	return s, nil
}

// createTables creates necessary tables and indexes
func (s *SQLite) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS string_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			value TEXT NOT NULL,
			length INTEGER NOT NULL,
			is_palindrome INTEGER NOT NULL,
			unique_characters INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			sha256_hash TEXT NOT NULL UNIQUE,
			character_frequency_map TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_string_records_created_at ON string_records(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("exec query: %w", err)
		}
	}

	return nil
}

const selectColumns = `SELECT value, length, is_palindrome, unique_characters, word_count,
	sha256_hash, character_frequency_map, created_at FROM string_records`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*StringRecord, error) {
	var record StringRecord
	var freq, createdAt string

	err := row.Scan(
		&record.Value,
		&record.Length,
		&record.IsPalindrome,
		&record.UniqueCharacters,
		&record.WordCount,
		&record.SHA256Hash,
		&freq,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(freq), &record.CharacterFrequencyMap); err != nil {
		return nil, fmt.Errorf("decode character_frequency_map: %w", err)
	}
	record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}

	return &record, nil
}

// FindByHash finds a record by its content hash
func (s *SQLite) FindByHash(ctx context.Context, hash string) (*StringRecord, error) {
	record, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE sha256_hash = ?`, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ExistsByHash checks if a record exists
func (s *SQLite) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM string_records WHERE sha256_hash = ?`, hash).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert inserts a new record, relying on the UNIQUE constraint for duplicates
func (s *SQLite) Insert(ctx context.Context, record *StringRecord) error {
	freq, err := json.Marshal(record.CharacterFrequencyMap)
	if err != nil {
		return fmt.Errorf("encode character_frequency_map: %w", err)
	}

	query := `INSERT INTO string_records
		(value, length, is_palindrome, unique_characters, word_count, sha256_hash, character_frequency_map, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		record.Value,
		record.Length,
		record.IsPalindrome,
		record.UniqueCharacters,
		record.WordCount,
		record.SHA256Hash,
		string(freq),
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
	)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	return err
}

// Delete removes a record by hash
func (s *SQLite) Delete(ctx context.Context, hash string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM string_records WHERE sha256_hash = ?`, hash)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every record, oldest first
func (s *SQLite) ListAll(ctx context.Context) ([]*StringRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*StringRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Disconnect closes the SQLite connection
func (s *SQLite) Disconnect() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}

	log.Info("SQLite connection closed")
	return nil
}

// Ping checks if the connection is alive
func (s *SQLite) Ping() error {
	return s.db.Ping()
}
