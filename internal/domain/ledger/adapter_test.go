package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singofwalls/checkbook-updater/internal/adapters/bank"
	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
)

var testAccounts = []string{"Checking", "Savings"}

func testTransaction() bank.Transaction {
	return bank.Transaction{
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "POS DEBIT COFFEE SHOP",
		Amount:      -42.50,
		Balance:     normalize.Number(1000.00),
		Status:      bank.StatusPosted,
		Account:     "Checking",
	}
}

func testAdapter() *Adapter {
	return NewAdapter("01/02/2006", "=FORMULA")
}

func TestAdapter_Resolve_Date(t *testing.T) {
	v, err := testAdapter().Resolve(testTransaction(), FieldDate, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "01/05/2024", v.Text())
}

func TestAdapter_Resolve_AccountAmount(t *testing.T) {
	a := testAdapter()
	tx := testTransaction()

	v, err := a.Resolve(tx, "Checking", testAccounts)
	require.NoError(t, err)
	n, ok := v.Number()
	assert.True(t, ok)
	assert.Equal(t, -42.50, n)

	// Other accounts stay blank: one non-empty amount cell per row.
	v, err = a.Resolve(tx, "Savings", testAccounts)
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestAdapter_Resolve_Description(t *testing.T) {
	v, err := testAdapter().Resolve(testTransaction(), FieldDescription, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "POS DEBIT COFFEE SHOP", v.Text())
}

func TestAdapter_Resolve_Method_OrderSignificant(t *testing.T) {
	a := testAdapter()
	tx := testTransaction()

	// "deposit" appears in the Direct group, which is checked before Card
	// even though "card" words may also appear.
	tx.Description = "CARD DEPOSIT"
	v, err := a.Resolve(tx, FieldMethod, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Direct", v.Text())

	tx.Description = "CHECK 1042"
	v, err = a.Resolve(tx, FieldMethod, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Check", v.Text())

	tx.Description = "SOMETHING ELSE ENTIRELY"
	v, err = a.Resolve(tx, FieldMethod, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Card", v.Text())
}

func TestAdapter_Resolve_PayPalAndPending(t *testing.T) {
	a := testAdapter()
	tx := testTransaction()

	tx.Description = "PAYPAL INST XFER"
	v, err := a.Resolve(tx, FieldPayPal, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Yes", v.Text())

	v, err = a.Resolve(tx, FieldPending, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "No", v.Text())

	tx.Status = bank.StatusPending
	v, err = a.Resolve(tx, FieldPending, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Yes", v.Text())
}

func TestAdapter_Resolve_Running(t *testing.T) {
	a := testAdapter()
	tx := testTransaction()

	// Display path: the record's own running column shows the bank balance.
	v, err := a.Resolve(tx, "Checking"+RunningSuffix, testAccounts)
	require.NoError(t, err)
	n, ok := v.Number()
	assert.True(t, ok)
	assert.Equal(t, 1000.00, n)

	// Other accounts' running columns stay blank.
	v, err = a.Resolve(tx, "Savings"+RunningSuffix, testAccounts)
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())

	// Storage path: the plain Running field gets the sheet formula.
	v, err = a.Resolve(tx, FieldRunning, testAccounts)
	require.NoError(t, err)
	assert.Equal(t, "=FORMULA", v.Text())
}

func TestAdapter_Resolve_UnknownFieldFails(t *testing.T) {
	_, err := testAdapter().Resolve(testTransaction(), "Mystery_Column", testAccounts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestAdapter_RowValues(t *testing.T) {
	fields := map[string]int{
		FieldDate:        0,
		"Checking":       3,
		"Savings":        5,
		FieldDescription: 7,
		FieldMethod:      9,
		FieldPayPal:      10,
		FieldPending:     11,
	}

	values, err := testAdapter().RowValues(testTransaction(), fields, testAccounts)
	require.NoError(t, err)
	require.Len(t, values, 12)

	assert.Equal(t, "01/05/2024", values[0].Text())
	amount, ok := values[3].Number()
	assert.True(t, ok)
	assert.Equal(t, -42.50, amount)
	// Column right of the account amount holds the running formula.
	assert.Equal(t, "=FORMULA", values[4].Text())
	assert.True(t, values[5].IsEmpty(), "other account column stays empty")
	assert.Equal(t, "POS DEBIT COFFEE SHOP", values[7].Text())
	assert.True(t, values[8].IsEmpty(), "unmapped column left untouched")
	assert.Equal(t, "Card", values[9].Text())
	assert.Equal(t, "No", values[10].Text())
	assert.Equal(t, "No", values[11].Text())
}

func TestAdapter_RowValues_UnknownAccount(t *testing.T) {
	tx := testTransaction()
	tx.Account = "Brokerage"

	_, err := testAdapter().RowValues(tx, map[string]int{FieldDate: 0}, testAccounts)
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		field string
		want  FieldKind
	}{
		{FieldDate, KindDate},
		{"Checking", KindAccountAmount},
		{FieldDescription, KindDescription},
		{FieldMethod, KindMethod},
		{FieldPayPal, KindPayPal},
		{FieldInAccount, KindInAccount},
		{FieldPending, KindPending},
		{"Checking Running", KindRunning},
		{FieldRunning, KindRunning},
		{"Mystery_Column", KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.field, testAccounts), "field %q", tt.field)
	}
}
