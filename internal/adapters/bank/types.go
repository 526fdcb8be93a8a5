// Package bank reads transaction exports copied from the bank's website.
//
// Two formats are supported: tab-separated per-account export files (one
// file per account, the file name is the account name) and the raw
// statement-table text a user pastes from the transactions page.
package bank

import (
	"time"

	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

// Status is the posting state the bank reports for a transaction.
type Status int

const (
	StatusPosted Status = iota
	StatusPending
)

// String returns the string representation of Status.
func (s Status) String() string {
	if s == StatusPending {
		return "pending"
	}
	return "posted"
}

// Transaction is one normalized bank-side transaction record.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      float64
	// Balance is the balance the bank reported alongside the transaction.
	// Pending transactions usually report none, which is the empty value.
	Balance normalize.Value
	Status  Status
	Account string
}

// HasBalance reports whether the bank reported a balance for the transaction.
func (t Transaction) HasBalance() bool {
	_, ok := t.Balance.Number()
	return ok
}
