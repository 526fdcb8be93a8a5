package bank

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatement(t *testing.T) {
	table := strings.Join([]string{
		"Posted Oct 10, 2025",
		"COFFEE SHOP",
		"-4.50 1,000.00",
		"Memo Post Oct 14, 2025",
		"STARBUCKS #123 MEMO POST",
		"-5.25",
	}, "\n")

	txs, err := ParseStatement(strings.NewReader(table), "Checking", false)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	posted := txs[0]
	assert.Equal(t, StatusPosted, posted.Status)
	assert.Equal(t, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), posted.Date)
	assert.Equal(t, "COFFEE SHOP", posted.Description)
	assert.Equal(t, -4.50, posted.Amount)
	balance, ok := posted.Balance.Number()
	assert.True(t, ok)
	assert.Equal(t, 1000.00, balance)

	pending := txs[1]
	assert.Equal(t, StatusPending, pending.Status)
	assert.Equal(t, -5.25, pending.Amount)
	assert.False(t, pending.HasBalance())
	assert.Equal(t, "Checking", pending.Account)
}

func TestParseStatement_MidTransactionTruncation(t *testing.T) {
	table := strings.Join([]string{
		"Posted Oct 10, 2025",
		"COFFEE SHOP",
	}, "\n")

	_, err := ParseStatement(strings.NewReader(table), "Checking", false)
	assert.Error(t, err)
}

func TestParseStatement_BadDateLine(t *testing.T) {
	table := strings.Join([]string{
		"MORE TRANSACTIONS",
		"COFFEE SHOP",
		"-4.50",
	}, "\n")

	_, err := ParseStatement(strings.NewReader(table), "Checking", false)
	assert.Error(t, err)
}
