package matcher

import (
	"fmt"
	"math"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/adapters/bank"
	"github.com/singofwalls/checkbook-updater/internal/domain/ledger"
)

// pendingTag is the marker the bank appends to descriptions of transactions
// that have not posted yet. It disappears once the transaction clears, so
// description comparison strips it.
const pendingTag = "MEMO POST"

// Factors is the factor vector for one (sheet row, bank transaction) pair.
// Differences are signed; only magnitude feeds the score.
type Factors struct {
	// DateDays is bank date minus sheet date, in days.
	DateDays float64
	// Amount is bank amount minus the row's non-empty account amount.
	Amount float64
	// Balance is bank balance minus the account's running balance, zero
	// when the bank reports no balance.
	Balance float64
	// DescriptionDiffers reports inequality of the compared descriptions.
	DescriptionDiffers bool
	// DescriptionUpdate reports raw description inequality: the pair can
	// still match, but the sheet copy should be refreshed.
	DescriptionUpdate bool
	// PendingPosted reports the sheet row marked pending while the bank
	// reports the transaction posted.
	PendingPosted bool
}

// Factors computes the factor vector for one pair. A sheet row with no
// amount under any configured account is a configuration error: the field
// map and the sheet have drifted apart and the run must abort.
func (c Config) Factors(entry ledger.Entry, tx bank.Transaction, accounts []string) (Factors, error) {
	account, amount, ok := entry.AccountAmount(accounts)
	if !ok {
		return Factors{}, fmt.Errorf("no account column holds an amount for sheet row %d", entry.Row)
	}

	var f Factors

	if entryDate, ok := entry.Date(); ok {
		f.DateDays = tx.Date.Sub(entryDate).Hours() / 24
	} else {
		// Malformed sheet date in permissive mode: full distance.
		f.DateDays = math.Inf(1)
	}

	f.Amount = tx.Amount - amount

	if balance, ok := tx.Balance.Number(); ok {
		if running, ok := entry.Running(account).Number(); ok {
			f.Balance = balance - running
			if math.Abs(f.Balance) < c.BalanceEpsilon {
				f.Balance = 0
			}
		}
	}

	sheetDesc := entry.Description()
	if c.NormalizeDescriptions {
		f.DescriptionDiffers = formatDescription(sheetDesc) != formatDescription(tx.Description)
	} else {
		f.DescriptionDiffers = sheetDesc != tx.Description
	}
	f.DescriptionUpdate = sheetDesc != tx.Description

	f.PendingPosted = entry.Pending() && tx.Status == bank.StatusPosted

	return f, nil
}

// formatDescription canonicalizes a description for comparison: uppercase,
// pending tag removed, whitespace collapsed.
func formatDescription(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, pendingTag, " ")
	return strings.Join(strings.Fields(s), " ")
}
