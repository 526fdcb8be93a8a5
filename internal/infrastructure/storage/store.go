// Package storage keeps a local history of reconciliation runs and their
// outcomes in SQLite, so past runs can be audited after the sheet has moved
// on.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite access to the run history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies pending
// migrations.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts or updates a run row.
func (s *Store) SaveRun(run *Run) error {
	query := `
	INSERT OR REPLACE INTO runs
	(id, started_at, finished_at, dry_run, exact_count, updated_count, new_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
		run.DryRun,
		run.ExactCount,
		run.UpdatedCount,
		run.NewCount,
	)
	return err
}

// SaveMatch records one outcome for a run.
func (s *Store) SaveMatch(m *Match) error {
	query := `
	INSERT INTO run_matches
	(run_id, kind, sheet_row, account, date, amount, score, description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		m.RunID,
		string(m.Kind),
		m.SheetRow,
		m.Account,
		m.Date,
		m.Amount,
		m.Score,
		m.Description,
	)
	return err
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	query := `
	SELECT id, started_at, finished_at, dry_run, exact_count, updated_count, new_count
	FROM runs WHERE id = ?
	`
	run := &Run{}
	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		&run.DryRun,
		&run.ExactCount,
		&run.UpdatedCount,
		&run.NewCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// LastRun returns the most recently started run, or nil when none exist.
func (s *Store) LastRun() (*Run, error) {
	query := `
	SELECT id, started_at, finished_at, dry_run, exact_count, updated_count, new_count
	FROM runs ORDER BY started_at DESC LIMIT 1
	`
	run := &Run{}
	err := s.db.QueryRow(query).Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		&run.DryRun,
		&run.ExactCount,
		&run.UpdatedCount,
		&run.NewCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RunMatches returns every outcome recorded for a run, insertion order.
func (s *Store) RunMatches(runID string) ([]*Match, error) {
	query := `
	SELECT id, run_id, kind, sheet_row, account, date, amount, score, description
	FROM run_matches WHERE run_id = ? ORDER BY id
	`
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m := &Match{}
		var kind string
		if err := rows.Scan(
			&m.ID,
			&m.RunID,
			&kind,
			&m.SheetRow,
			&m.Account,
			&m.Date,
			&m.Amount,
			&m.Score,
			&m.Description,
		); err != nil {
			return nil, err
		}
		m.Kind = MatchKind(kind)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
