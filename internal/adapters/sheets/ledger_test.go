package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

type write struct {
	rng    string
	values [][]interface{}
}

type fakeAPI struct {
	grid    [][]string
	updates []write
	appends []write
}

func (f *fakeAPI) GetRange(_ context.Context, _ string) ([][]string, error) {
	return f.grid, nil
}

func (f *fakeAPI) UpdateCells(_ context.Context, rng string, values [][]interface{}) error {
	f.updates = append(f.updates, write{rng: rng, values: values})
	return nil
}

func (f *fakeAPI) AppendCells(_ context.Context, rng string, values [][]interface{}) error {
	f.appends = append(f.appends, write{rng: rng, values: values})
	return nil
}

// testGrid mirrors the sheet layout: accounts on row 1, starred field
// headers on row 5, data below.
func testGrid() [][]string {
	return [][]string{
		{"Account", "Checking", "Savings"},
		{},
		{},
		{},
		{"Date*", "Budget", "Checking*", "Running*", "Savings*", "Running*", "Bank Listed Item*", "Notes", "Method*", "PayPal*", "Pending*"},
		{"01/05/2024", "food", "42.50", "1042.50", "", "", "COFFEE SHOP", "good coffee", "Card", "No", "No"},
		{"01/06/2024", "", "", "", "-5.25", "994.75", "STARBUCKS #123 MEMO POST", "", "Card", "No", "Yes"},
	}
}

func newTestLedger(api API) *Ledger {
	return NewLedger(api, "Sheet1", 5, normalize.Parser{DateFormat: "01/02/2006"})
}

func TestLedger_Load(t *testing.T) {
	api := &fakeAPI{grid: testGrid()}
	l := newTestLedger(api)
	require.NoError(t, l.Load(context.Background()))

	assert.Equal(t, []string{"Checking", "Savings"}, l.Accounts())

	fields := l.Fields()
	assert.Equal(t, 0, fields["Date"])
	assert.Equal(t, 2, fields["Checking"])
	assert.Equal(t, 4, fields["Savings"])
	assert.Equal(t, 6, fields["Bank_Listed_Item"])
	assert.Equal(t, 8, fields["Method"])
	assert.NotContains(t, fields, "Budget", "unstarred headers are not fields")
	assert.NotContains(t, fields, "Notes")

	entries := l.Entries()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, 0, first.Row)
	date, ok := first.Date()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), date)
	amount, ok := first.Value("Checking").Number()
	require.True(t, ok)
	assert.Equal(t, 42.50, amount)
	running, ok := first.Running("Checking").Number()
	require.True(t, ok, "the cell right of an account column is its running balance")
	assert.Equal(t, 1042.50, running)
	assert.Equal(t, "COFFEE SHOP", first.Description())
	assert.False(t, first.Pending())

	second := entries[1]
	assert.Equal(t, 1, second.Row)
	assert.True(t, second.Pending())
	assert.True(t, second.Value("Checking").IsEmpty())
	amount, ok = second.Value("Savings").Number()
	require.True(t, ok)
	assert.Equal(t, -5.25, amount)
}

func TestLedger_Load_TooFewRows(t *testing.T) {
	api := &fakeAPI{grid: [][]string{{"Account", "Checking"}}}
	l := newTestLedger(api)

	err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected headers on row 5")
}

func TestLedger_Load_NoStarredHeaders(t *testing.T) {
	api := &fakeAPI{grid: [][]string{
		{"Account", "Checking"},
		{}, {}, {},
		{"Date", "Checking", "Notes"},
	}}
	l := newTestLedger(api)

	err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no starred field headers")
}

func TestLedger_Update_AddressesDataRow(t *testing.T) {
	api := &fakeAPI{grid: testGrid()}
	l := newTestLedger(api)
	require.NoError(t, l.Load(context.Background()))

	values := []normalize.Value{
		normalize.Text("01/06/2024"),
		normalize.Empty(),
		normalize.Number(-5.25),
	}
	require.NoError(t, l.Update(context.Background(), 1, values))

	require.Len(t, api.updates, 1)
	assert.Equal(t, "Sheet1!A7", api.updates[0].rng)
	require.Len(t, api.updates[0].values, 1)
	row := api.updates[0].values[0]
	assert.Equal(t, "01/06/2024", row[0])
	assert.Nil(t, row[1], "empty cells stay untouched on the sheet")
	assert.Equal(t, -5.25, row[2])
}

func TestLedger_Append_TargetsFirstDataRow(t *testing.T) {
	api := &fakeAPI{grid: testGrid()}
	l := newTestLedger(api)
	require.NoError(t, l.Load(context.Background()))

	require.NoError(t, l.Append(context.Background(), []normalize.Value{normalize.Text("01/09/2024")}))

	require.Len(t, api.appends, 1)
	assert.Equal(t, "Sheet1!A6", api.appends[0].rng)
}

func TestLedger_Load_StrictDateError(t *testing.T) {
	grid := testGrid()
	grid[5][0] = "not a date"
	api := &fakeAPI{grid: grid}
	l := NewLedger(api, "Sheet1", 5, normalize.Parser{DateFormat: "01/02/2006", Strict: true})

	err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet row 6, field Date")
}

func TestRunningFormula(t *testing.T) {
	formula := RunningFormula(6)
	assert.Contains(t, formula, "ADDRESS(6, COLUMN() - 1)")
	assert.True(t, len(formula) > 0 && formula[0] == '=')
}

func TestParseAccounts_SkipsLabelCell(t *testing.T) {
	assert.Equal(t, []string{"Checking", "Savings"}, parseAccounts([]string{"Account", "Checking", "", "Savings"}))
	assert.Nil(t, parseAccounts([]string{"Account"}))
	assert.Nil(t, parseAccounts(nil))
}

func TestParseFields(t *testing.T) {
	fields := parseFields([]string{"Date*", "Budget", " Bank Listed Item* ", "*"})
	assert.Equal(t, map[string]int{"Date": 0, "Bank_Listed_Item": 2}, fields)
}

func TestParseFields_DuplicateHeaderKeepsFirstColumn(t *testing.T) {
	fields := parseFields([]string{"Checking*", "Running*", "Savings*", "Running*"})
	assert.Equal(t, 1, fields["Running"])
}
