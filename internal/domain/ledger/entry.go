// Package ledger models the checkbook sheet rows and maps bank transactions
// onto the sheet's field vocabulary.
package ledger

import (
	"time"

	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

// Canonical field names carried by the sheet's header row.
const (
	FieldDate        = "Date"
	FieldDescription = "Bank_Listed_Item"
	FieldMethod      = "Method"
	FieldPayPal      = "PayPal"
	FieldInAccount   = "In_Account"
	FieldPending     = "Pending"
	FieldRunning     = "Running"
)

// RunningSuffix joins an account name to its running-balance key, e.g.
// "Checking Running". The running cell sits immediately right of the
// account's amount column.
const RunningSuffix = " Running"

// Entry is one row of the checkbook sheet. Row is the row's position inside
// the fetched range and is its persisted identity: it never changes once
// assigned, except that new rows append at the end.
type Entry struct {
	Row    int
	Fields map[string]normalize.Value
}

// Value returns the entry's value for a field, or the empty value.
func (e Entry) Value(field string) normalize.Value {
	return e.Fields[field]
}

// Date returns the entry's date and whether it holds a parsable one.
func (e Entry) Date() (time.Time, bool) {
	return e.Fields[FieldDate].Date()
}

// Description returns the entry's bank-listed description text.
func (e Entry) Description() string {
	return e.Fields[FieldDescription].Text()
}

// Running returns the running balance recorded next to an account column.
func (e Entry) Running(account string) normalize.Value {
	return e.Fields[account+RunningSuffix]
}

// Pending reports whether the row is flagged as a pending transaction.
func (e Entry) Pending() bool {
	return e.Fields[FieldPending].Text() == "Yes"
}

// AccountAmount scans the configured accounts in order and returns the first
// account holding a non-empty amount for this row, along with the amount.
// Every row must carry exactly one account amount; none at all means the
// field map and the sheet have drifted apart.
func (e Entry) AccountAmount(accounts []string) (account string, amount float64, ok bool) {
	for _, name := range accounts {
		if n, isNum := e.Fields[name].Number(); isNum {
			return name, n, true
		}
	}
	return "", 0, false
}
