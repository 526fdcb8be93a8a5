package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

// DateFormat is the date layout the bank uses in exports, e.g. "Oct 5, 2025".
const DateFormat = "Jan 2, 2006"

// pendingWords mark a transaction that has not finally posted yet.
var pendingWords = []string{"memo post", "pending"}

// Source loads transactions from a directory of per-account export files.
// Each "<account>.txt" file holds a tab-separated export for that account.
type Source struct {
	Dir    string
	parser normalize.Parser
}

// NewSource creates a source over the given directory. strict selects strict
// value normalization (malformed dates abort instead of passing through).
func NewSource(dir string, strict bool) *Source {
	return &Source{
		Dir:    dir,
		parser: normalize.Parser{DateFormat: DateFormat, Strict: strict},
	}
}

// Load reads every .txt export in the directory and returns all transactions.
// No ordering is guaranteed; the reconciliation driver sorts by date.
func (s *Source) Load() ([]Transaction, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read bank export dir: %w", err)
	}

	var txs []Transaction
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read bank export %s: %w", entry.Name(), err)
		}
		account := strings.TrimSuffix(entry.Name(), ".txt")
		fileTxs, err := s.parseExport(account, string(content))
		if err != nil {
			return nil, fmt.Errorf("parse bank export %s: %w", entry.Name(), err)
		}
		txs = append(txs, fileTxs...)
	}
	return txs, nil
}

// parseExport parses one account's tab-separated export. The first line names
// the fields. The export splits each transaction across two lines: the date on
// its own line, the remaining values tab-separated on the next.
func (s *Source) parseExport(account, content string) ([]Transaction, error) {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil, nil
	}

	fields := parseHeader(lines[0])

	var txs []Transaction
	rows := lines[1:]
	for i := 1; i < len(rows); i += 2 {
		// Fold the date line onto the start of the following value line.
		values := strings.Split(rows[i-1]+rows[i], "\t")
		tx, err := s.buildTransaction(account, fields, values)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// parseHeader maps field names to their value positions. The export sometimes
// carries an invisible "Transaction Status" header cell with no corresponding
// values; drop it so the remaining indices line up.
func parseHeader(header string) map[string]int {
	names := strings.Split(header, "\t")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	if len(names) > 0 && names[0] == "Transaction Status" {
		names = names[1:]
	}

	fields := make(map[string]int, len(names))
	for i, name := range names {
		fields[name] = i
	}
	return fields
}

func (s *Source) buildTransaction(account string, fields map[string]int, values []string) (Transaction, error) {
	tx := Transaction{Account: account}

	get := func(field string) string {
		idx, ok := fields[field]
		if !ok || idx >= len(values) {
			return ""
		}
		return strings.TrimSpace(values[idx])
	}

	dateVal, err := s.parser.Cell(get("Date"), true)
	if err != nil {
		return Transaction{}, err
	}
	date, ok := dateVal.Date()
	if !ok {
		return Transaction{}, fmt.Errorf("transaction has no parsable date: %q", get("Date"))
	}
	tx.Date = date

	tx.Description = get("Description")

	amountVal, err := s.parser.Cell(get("Amount"), false)
	if err != nil {
		return Transaction{}, err
	}
	amount, ok := amountVal.Number()
	if !ok {
		return Transaction{}, fmt.Errorf("transaction has no numeric amount: %q", get("Amount"))
	}
	tx.Amount = amount

	balanceVal, err := s.parser.Cell(get("Balance"), false)
	if err != nil {
		return Transaction{}, err
	}
	if _, ok := balanceVal.Number(); ok {
		tx.Balance = balanceVal
	}

	tx.Status = statusOf(get("Transaction Status"), tx.Description)
	return tx, nil
}

// statusOf derives the posting state. A status column wins when present;
// otherwise a pending marker inside the description decides.
func statusOf(statusValue, description string) Status {
	text := strings.ToLower(statusValue)
	if text == "" {
		text = strings.ToLower(description)
	}
	for _, word := range pendingWords {
		if strings.Contains(text, word) {
			return StatusPending
		}
	}
	return StatusPosted
}

func splitLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := raw[:0]
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
