package storage

import "time"

// MatchKind classifies one reconciliation outcome.
type MatchKind string

const (
	// MatchExact is a pass-1 pairing: the sheet already reflects the bank.
	MatchExact MatchKind = "exact"
	// MatchUpdated is a confirmed near match whose sheet row was rewritten.
	MatchUpdated MatchKind = "updated"
	// MatchNew is a bank transaction appended as a new sheet row.
	MatchNew MatchKind = "new"
)

// Run is one reconciliation run.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	DryRun       bool      `json:"dry_run"`
	ExactCount   int       `json:"exact_count"`
	UpdatedCount int       `json:"updated_count"`
	NewCount     int       `json:"new_count"`
}

// Match is one recorded outcome within a run.
type Match struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Kind        MatchKind `json:"kind"`
	SheetRow    int       `json:"sheet_row"` // -1 for appended rows
	Account     string    `json:"account"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Score       float64   `json:"score"`
	Description string    `json:"description"`
}
