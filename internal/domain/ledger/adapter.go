package ledger

import (
	"fmt"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/adapters/bank"
	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

// MethodGroup maps a payment method to the description keywords that imply
// it. Groups are checked in order and the first containing keyword wins, so
// "deposit" claims Direct before "card" can claim Card.
type MethodGroup struct {
	Method string   `yaml:"method"`
	Words  []string `yaml:"words"`
}

// DefaultMethodGroups returns the keyword groups the checkbook sheet uses.
func DefaultMethodGroups() []MethodGroup {
	return []MethodGroup{
		{Method: "Direct", Words: []string{"deposit", "ach", "accr earning pymt"}},
		{Method: "Check", Words: []string{"check"}},
		{Method: "Card", Words: []string{"pos", "debit", "card"}},
	}
}

// Adapter resolves sheet field names to values taken from a bank
// transaction. It owns the sheet-side formatting conventions: the date
// layout, the payment-method keyword groups, and the running-balance formula
// written into new and updated rows.
type Adapter struct {
	DateFormat     string
	Methods        []MethodGroup
	MethodDefault  string
	RunningFormula string
}

// NewAdapter creates an adapter with the default method groups. The running
// formula depends on where the sheet's data rows start, so the sheets layer
// supplies it.
func NewAdapter(dateFormat, runningFormula string) *Adapter {
	return &Adapter{
		DateFormat:     dateFormat,
		Methods:        DefaultMethodGroups(),
		MethodDefault:  "Card",
		RunningFormula: runningFormula,
	}
}

// Resolve returns the cell value a sheet field should hold for the given
// bank transaction. Unknown fields are an error, never a silent blank.
func (a *Adapter) Resolve(tx bank.Transaction, field string, accounts []string) (normalize.Value, error) {
	switch KindOf(field, accounts) {
	case KindDate:
		return normalize.Text(tx.Date.Format(a.DateFormat)), nil

	case KindAccountAmount:
		// Exactly one account column holds an amount per row.
		if tx.Account == field {
			return normalize.Number(tx.Amount), nil
		}
		return normalize.Empty(), nil

	case KindDescription:
		return normalize.Text(tx.Description), nil

	case KindMethod:
		return normalize.Text(a.method(strings.ToLower(tx.Description))), nil

	case KindPayPal:
		return yesNo(strings.Contains(strings.ToLower(tx.Description), "paypal")), nil

	case KindInAccount:
		return normalize.Text("Yes"), nil

	case KindPending:
		return yesNo(tx.Status == bank.StatusPending), nil

	case KindRunning:
		switch field {
		case tx.Account + RunningSuffix:
			// Side-by-side display of the bank's reported balance.
			return tx.Balance, nil
		case FieldRunning:
			// Storage path: the sheet derives running balances by formula
			// rather than copying the bank's number.
			return normalize.Text(a.RunningFormula), nil
		default:
			return normalize.Empty(), nil
		}

	default:
		return normalize.Value{}, fmt.Errorf("unknown field from sheet: %s", field)
	}
}

// RowValues lays out the full cell row for a transaction, in column order per
// the field map. The cell right of the transaction's account column becomes
// its running-balance formula. Columns the adapter has no opinion about stay
// empty and are left untouched by the sheet write.
func (a *Adapter) RowValues(tx bank.Transaction, fields map[string]int, accounts []string) ([]normalize.Value, error) {
	byColumn := make(map[int]string, len(fields)+1)
	width := 0
	for field, col := range fields {
		byColumn[col] = field
		if col+1 > width {
			width = col + 1
		}
	}

	accountCol, ok := fields[tx.Account]
	if !ok {
		return nil, fmt.Errorf("bank account %q has no sheet column", tx.Account)
	}
	byColumn[accountCol+1] = FieldRunning
	if accountCol+2 > width {
		width = accountCol + 2
	}

	values := make([]normalize.Value, width)
	for col, field := range byColumn {
		v, err := a.Resolve(tx, field, accounts)
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	return values, nil
}

func (a *Adapter) method(description string) string {
	for _, group := range a.Methods {
		for _, word := range group.Words {
			if strings.Contains(description, word) {
				return group.Method
			}
		}
	}
	return a.MethodDefault
}

func yesNo(b bool) normalize.Value {
	if b {
		return normalize.Text("Yes")
	}
	return normalize.Text("No")
}
