package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/domain/ledger"
	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

// API is the slice of Client the ledger needs. Tests substitute an in-memory
// grid.
type API interface {
	GetRange(ctx context.Context, rng string) ([][]string, error)
	UpdateCells(ctx context.Context, rng string, values [][]interface{}) error
	AppendCells(ctx context.Context, rng string, values [][]interface{}) error
}

// Ledger reads the checkbook sheet into typed entries and writes reconciled
// rows back. The sheet's layout conventions live here: account names sit on
// row 1 (the first cell is a label, not an account), field headers sit on a
// configured header row and are marked with a trailing "*", and data rows
// start immediately below the header row.
type Ledger struct {
	api       API
	sheetName string
	fieldRow  int // 1-based sheet row carrying the field headers
	parser    normalize.Parser

	accounts []string
	fields   map[string]int
	entries  []ledger.Entry
}

// NewLedger creates a ledger over the given sheet tab.
func NewLedger(api API, sheetName string, fieldRow int, parser normalize.Parser) *Ledger {
	return &Ledger{api: api, sheetName: sheetName, fieldRow: fieldRow, parser: parser}
}

// RunningFormula returns the formula a running-balance cell holds: the sum of
// the account column from the first data row down to the formula's own row,
// blank while the row has no amount yet.
func RunningFormula(firstDataRow int) string {
	return fmt.Sprintf(
		`=IF(ISBLANK(INDIRECT(ADDRESS(ROW(), COLUMN() - 1))), "", SUM(INDIRECT(ADDRESS(%d, COLUMN() - 1)&":"&ADDRESS(ROW(),COLUMN()-1))))`,
		firstDataRow,
	)
}

// FirstDataRow returns the 1-based sheet row where entries begin.
func (l *Ledger) FirstDataRow() int {
	return l.fieldRow + 1
}

// Load fetches the sheet and parses accounts, fields, and entries. Must be
// called before Accounts, Fields, Entries, or any write.
func (l *Ledger) Load(ctx context.Context) error {
	grid, err := l.api.GetRange(ctx, l.sheetName)
	if err != nil {
		return err
	}
	if len(grid) < l.fieldRow {
		return fmt.Errorf("sheet %q has %d rows, expected headers on row %d", l.sheetName, len(grid), l.fieldRow)
	}

	l.accounts = parseAccounts(grid[0])
	l.fields = parseFields(grid[l.fieldRow-1])
	if len(l.fields) == 0 {
		return fmt.Errorf("sheet %q row %d holds no starred field headers", l.sheetName, l.fieldRow)
	}

	l.entries = l.entries[:0]
	for i, row := range grid[l.fieldRow:] {
		entry, err := l.parseEntry(i, row)
		if err != nil {
			return err
		}
		l.entries = append(l.entries, entry)
	}
	return nil
}

// Accounts returns the account names from the sheet's top row.
func (l *Ledger) Accounts() []string { return l.accounts }

// Fields maps each field name to its zero-based column.
func (l *Ledger) Fields() map[string]int { return l.fields }

// Entries returns the parsed data rows in sheet order.
func (l *Ledger) Entries() []ledger.Entry { return l.entries }

// Update rewrites the entry at the given position. Nil cells in the outgoing
// row leave the sheet's existing cells alone, so columns outside the field
// map survive a rewrite.
func (l *Ledger) Update(ctx context.Context, row int, values []normalize.Value) error {
	rng := fmt.Sprintf("%s!A%d", l.sheetName, l.FirstDataRow()+row)
	return l.api.UpdateCells(ctx, rng, [][]interface{}{cellsOf(values)})
}

// Append adds a new entry after the sheet's last data row.
func (l *Ledger) Append(ctx context.Context, values []normalize.Value) error {
	rng := fmt.Sprintf("%s!A%d", l.sheetName, l.FirstDataRow())
	return l.api.AppendCells(ctx, rng, [][]interface{}{cellsOf(values)})
}

func (l *Ledger) parseEntry(index int, row []string) (ledger.Entry, error) {
	entry := ledger.Entry{Row: index, Fields: make(map[string]normalize.Value, len(l.fields))}
	isAccount := make(map[string]bool, len(l.accounts))
	for _, name := range l.accounts {
		isAccount[name] = true
	}

	for field, col := range l.fields {
		if col >= len(row) {
			continue
		}
		v, err := l.parser.Cell(row[col], field == ledger.FieldDate)
		if err != nil {
			return ledger.Entry{}, fmt.Errorf("sheet row %d, field %s: %w", l.FirstDataRow()+index, field, err)
		}
		entry.Fields[field] = v

		// The cell right of an account column is its running balance.
		if isAccount[field] && col+1 < len(row) {
			running, err := l.parser.Cell(row[col+1], false)
			if err != nil {
				return ledger.Entry{}, fmt.Errorf("sheet row %d, field %s running: %w", l.FirstDataRow()+index, field, err)
			}
			entry.Fields[field+ledger.RunningSuffix] = running
		}
	}
	return entry, nil
}

// parseAccounts reads the account names off the sheet's top row. The first
// cell is the row's label, not an account.
func parseAccounts(row []string) []string {
	var accounts []string
	for i, cell := range row {
		if i == 0 {
			continue
		}
		if cell = strings.TrimSpace(cell); cell != "" {
			accounts = append(accounts, cell)
		}
	}
	return accounts
}

// parseFields reads the header row. A header cell ending in "*" names a field
// the updater owns; spaces become underscores so "Bank Listed Item*" and the
// field constant Bank_Listed_Item line up.
func parseFields(row []string) map[string]int {
	fields := make(map[string]int)
	for col, cell := range row {
		cell = strings.TrimSpace(cell)
		if !strings.HasSuffix(cell, "*") {
			continue
		}
		name := strings.TrimSuffix(cell, "*")
		name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
		if name == "" {
			continue
		}
		// Duplicate headers (each account carries a Running column) keep
		// their first column.
		if _, seen := fields[name]; !seen {
			fields[name] = col
		}
	}
	return fields
}

// cellsOf converts typed values into API cells. Empty values become nil so
// the write skips them.
func cellsOf(values []normalize.Value) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		switch v.Kind() {
		case normalize.KindNumber:
			n, _ := v.Number()
			cells[i] = n
		case normalize.KindText:
			cells[i] = v.Text()
		case normalize.KindDate:
			d, _ := v.Date()
			cells[i] = d.Format("01/02/2006")
		default:
			cells[i] = nil
		}
	}
	return cells
}
