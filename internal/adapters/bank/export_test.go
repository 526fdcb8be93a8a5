package bank

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkingExport = "Date\tDescription\tAmount\tBalance\n" +
	"Oct 10, 2025" + "\n" +
	"\tCOFFEE SHOP\t-4.50\t1,000.00\n" +
	"Oct 12, 2025" + "\n" +
	"\tPAYROLL DEPOSIT\t2,500.00\t3,500.00\n"

func writeExport(t *testing.T, dir, account, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, account+".txt"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Checking", checkingExport)

	src := NewSource(dir, false)
	txs, err := src.Load()
	require.NoError(t, err)
	require.Len(t, txs, 2)

	tx := txs[0]
	assert.Equal(t, "Checking", tx.Account)
	assert.Equal(t, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "COFFEE SHOP", tx.Description)
	assert.Equal(t, -4.50, tx.Amount)
	assert.Equal(t, StatusPosted, tx.Status)

	balance, ok := tx.Balance.Number()
	assert.True(t, ok)
	assert.Equal(t, 1000.00, balance)
}

func TestSource_Load_PhantomStatusHeader(t *testing.T) {
	dir := t.TempDir()
	// The invisible "Transaction Status" header cell copies over without any
	// corresponding values; indices must still line up.
	writeExport(t, dir, "Savings",
		"Transaction Status\tDate\tDescription\tAmount\tBalance\n"+
			"Oct 11, 2025\n"+
			"\tTRANSFER\t50.00\t750.00\n")

	src := NewSource(dir, false)
	txs, err := src.Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "TRANSFER", txs[0].Description)
	assert.Equal(t, 50.00, txs[0].Amount)
}

func TestSource_Load_PendingFromDescription(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Checking",
		"Date\tDescription\tAmount\tBalance\n"+
			"Oct 14, 2025\n"+
			"\tSTARBUCKS #123 MEMO POST\t-5.25\t\n")

	src := NewSource(dir, false)
	txs, err := src.Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, StatusPending, txs[0].Status)
	assert.False(t, txs[0].HasBalance())
}

func TestSource_Load_AccountFromFileName(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Checking", checkingExport)
	writeExport(t, dir, "Savings",
		"Date\tDescription\tAmount\tBalance\n"+
			"Oct 11, 2025\n"+
			"\tINTEREST\t0.42\t750.42\n")

	src := NewSource(dir, false)
	txs, err := src.Load()
	require.NoError(t, err)
	require.Len(t, txs, 3)

	accounts := map[string]int{}
	for _, tx := range txs {
		accounts[tx.Account]++
	}
	assert.Equal(t, 2, accounts["Checking"])
	assert.Equal(t, 1, accounts["Savings"])
}
