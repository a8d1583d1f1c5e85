// Package seedstore persists the seeds of failing property runs in a
// SQLite database so failures can be replayed later. Recording is
// optional and best-effort; the store is never consulted implicitly by
// the trial driver.
package seedstore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Failure is one recorded failing run.
type Failure struct {
	// Property is the configured property name, possibly empty.
	Property string

	// Seed is the top-level seed that reproduces the failure.
	Seed int64

	// Trial is the 0-based index of the failing trial.
	Trial int

	// Inputs is the JSON rendering of the failing trial's values.
	Inputs string

	// RecordedAt is when the failure was stored.
	RecordedAt time.Time
}

// Store is a SQLite-backed failure database. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and if needed creates) the failure database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open failure database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS failures (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			property    TEXT    NOT NULL,
			seed        INTEGER NOT NULL,
			trial       INTEGER NOT NULL,
			inputs      TEXT    NOT NULL,
			recorded_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create failures table: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordFailure stores one failing run. It implements arb.FailureRecorder.
func (s *Store) RecordFailure(property string, seed int64, trial int, inputs string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO failures (property, seed, trial, inputs, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, property, seed, trial, inputs, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record failure: %w", err)
	}
	return nil
}

// Failures returns recorded failures, newest first. An empty property
// name matches all properties.
func (s *Store) Failures(property string) ([]Failure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT property, seed, trial, inputs, recorded_at
		FROM failures
	`
	args := []any{}
	if property != "" {
		query += ` WHERE property = ?`
		args = append(args, property)
	}
	query += ` ORDER BY id DESC LIMIT 100`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failure query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Property, &f.Seed, &f.Trial, &f.Inputs, &f.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan failure row: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failure row iteration failed: %w", err)
	}
	return out, nil
}

// LastSeed returns the most recently recorded failing seed for a
// property, and whether one exists.
func (s *Store) LastSeed(property string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seed int64
	err := s.db.QueryRow(`
		SELECT seed FROM failures WHERE property = ? ORDER BY id DESC LIMIT 1
	`, property).Scan(&seed)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("seed lookup failed: %w", err)
	}
	return seed, true, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
