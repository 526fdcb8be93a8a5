package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Cell_Dates(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006"}

	v, err := p.Cell("01/05/2024", true)
	require.NoError(t, err)
	d, ok := v.Date()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestParser_Cell_Numbers(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006"}

	tests := []struct {
		raw  string
		want float64
	}{
		{"42.50", 42.50},
		{"1,000.00", 1000.00},
		{"$5.25", 5.25},
		{"$1,234,567.89", 1234567.89},
		{"-17", -17},
	}

	for _, tt := range tests {
		v, err := p.Cell(tt.raw, false)
		require.NoError(t, err)
		n, ok := v.Number()
		assert.True(t, ok, "expected %q to parse as number", tt.raw)
		assert.Equal(t, tt.want, n)
	}
}

func TestParser_Cell_TextPassThrough(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006"}

	v, err := p.Cell("COFFEE SHOP", false)
	require.NoError(t, err)
	assert.Equal(t, KindText, v.Kind())
	assert.Equal(t, "COFFEE SHOP", v.Text())
}

func TestParser_Cell_EmptyIsEmpty(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006"}

	v, err := p.Cell("", false)
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())

	// Empty is not the number zero.
	_, isNum := v.Number()
	assert.False(t, isNum)
}

func TestParser_Cell_MalformedDate_Permissive(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006"}

	v, err := p.Cell("not a date", true)
	require.NoError(t, err)
	assert.Equal(t, KindText, v.Kind())
	assert.Equal(t, "not a date", v.Text())
}

func TestParser_Cell_MalformedDate_Strict(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006", Strict: true}

	_, err := p.Cell("not a date", true)
	assert.Error(t, err)
}

func TestParser_Normalize_Idempotent(t *testing.T) {
	p := Parser{DateFormat: "01/02/2006"}

	num := Number(42.5)
	v, err := p.Normalize(num, false)
	require.NoError(t, err)
	assert.Equal(t, num, v)

	date := Date(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	v, err = p.Normalize(date, true)
	require.NoError(t, err)
	assert.Equal(t, date, v)

	// Text values do get parsed.
	v, err = p.Normalize(Text("$9.99"), false)
	require.NoError(t, err)
	n, ok := v.Number()
	assert.True(t, ok)
	assert.Equal(t, 9.99, n)
}
