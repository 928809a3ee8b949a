// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dictionary

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS words (
	word TEXT PRIMARY KEY
) WITHOUT ROWID;
`

// ErrStoreClosed is returned by operations on a closed SQLiteStore.
var ErrStoreClosed = errors.New("dictionary store is closed")

// =============================================================================
// SQLITE STORE
// =============================================================================

// SQLiteStore keeps a word list in a SQLite database so that large lists
// survive between runs without re-parsing text files.
//
// Contains issues one indexed query per call. For the recovery engine, which
// performs up to 250 lookups per attack, take a Snapshot instead.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	mu       sync.RWMutex
	contains *sql.Stmt
}

// OpenSQLite opens (creating if needed) a word store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	stmt, err := db.Prepare("SELECT 1 FROM words WHERE word = ?")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare lookup: %w", err)
	}

	return &SQLiteStore{db: db, path: path, contains: stmt}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Contains reports whether word is stored. Query errors count as a miss.
func (s *SQLiteStore) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return false
	}
	var one int
	return s.contains.QueryRow(word).Scan(&one) == nil
}

// Count returns the number of stored words.
func (s *SQLiteStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

// Len implements Sizer. Errors report zero words.
func (s *SQLiteStore) Len() int {
	n, err := s.Count()
	if err != nil {
		return 0
	}
	return n
}

// Import inserts words in one transaction and returns how many were new.
func (s *SQLiteStore) Import(words []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO words (word) VALUES (?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		n := Normalize(w)
		if n == "" {
			continue
		}
		res, err := stmt.Exec(n)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %q: %w", n, err)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit words: %w", err)
	}
	return added, nil
}

// ImportFrom reads a word list in the Load format and imports it.
func (s *SQLiteStore) ImportFrom(r io.Reader) (int, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read word list: %w", err)
	}
	return s.Import(words)
}

// Snapshot copies every stored word into an in-memory WordSet.
func (s *SQLiteStore) Snapshot() (*WordSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT word FROM words")
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	ws := &WordSet{words: make(map[string]struct{})}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		ws.words[w] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	return ws, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	s.contains.Close()
	err := s.db.Close()
	s.db = nil
	return err
}
