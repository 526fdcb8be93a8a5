package bank

import (
	"fmt"
	"io"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

// parseState names the position inside a statement-table transaction. The
// table lists each transaction as three lines: a status+date line, a
// description line, and an amount line with an optional trailing balance.
type parseState int

const (
	expectDate parseState = iota
	expectDescription
	expectAmount
)

// statusPrefixes are the status markers that open a transaction's first line,
// longest first so "Memo Post" is not split as "Memo".
var statusPrefixes = []struct {
	prefix string
	status Status
}{
	{"Memo Post", StatusPending},
	{"Pending", StatusPending},
	{"Posted", StatusPosted},
}

// ParseStatement parses the transaction table text pasted from the bank's
// website for a single account.
func ParseStatement(r io.Reader, account string, strict bool) ([]Transaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}
	parser := normalize.Parser{DateFormat: DateFormat, Strict: strict}

	var (
		txs   []Transaction
		tx    Transaction
		state = expectDate
	)

	for _, line := range splitLines(string(content)) {
		line = strings.TrimSpace(line)

		switch state {
		case expectDate:
			tx = Transaction{Account: account}
			rest := line
			tx.Status = StatusPosted
			for _, sp := range statusPrefixes {
				if strings.HasPrefix(line, sp.prefix) {
					tx.Status = sp.status
					rest = strings.TrimSpace(strings.TrimPrefix(line, sp.prefix))
					break
				}
			}
			dateVal, err := parser.Cell(rest, true)
			if err != nil {
				return nil, err
			}
			date, ok := dateVal.Date()
			if !ok {
				return nil, fmt.Errorf("expected a date line, got %q", line)
			}
			tx.Date = date
			state = expectDescription

		case expectDescription:
			tx.Description = line
			state = expectAmount

		case expectAmount:
			// "amount" or "amount balance"; pending lines carry no balance.
			amountText, balanceText, hasBalance := strings.Cut(line, " ")

			amountVal, err := parser.Cell(amountText, false)
			if err != nil {
				return nil, err
			}
			amount, ok := amountVal.Number()
			if !ok {
				return nil, fmt.Errorf("expected an amount line, got %q", line)
			}
			tx.Amount = amount

			if hasBalance {
				balanceVal, err := parser.Cell(strings.TrimSpace(balanceText), false)
				if err != nil {
					return nil, err
				}
				if _, ok := balanceVal.Number(); ok {
					tx.Balance = balanceVal
				}
			}

			txs = append(txs, tx)
			state = expectDate
		}
	}

	if state != expectDate {
		return nil, fmt.Errorf("statement ended mid-transaction")
	}
	return txs, nil
}
