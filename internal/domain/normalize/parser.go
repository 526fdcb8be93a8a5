package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// currencyChars strips thousands separators and currency symbols before
// attempting a numeric parse.
var currencyChars = regexp.MustCompile(`[,$]`)

// Parser converts raw cell strings into typed values.
//
// In permissive mode (the default) a cell that fails to parse stays a text
// value and scoring degrades gracefully. In strict mode a date cell that does
// not parse is an error, so malformed source data aborts the run instead of
// producing nonsense match factors.
type Parser struct {
	DateFormat string // Go layout for date cells, e.g. "01/02/2006"
	Strict     bool
}

// Cell parses a raw cell. isDate marks the cell as belonging to the date
// field; other cells become numbers when they parse as one (after stripping
// "," and "$") and stay text otherwise.
func (p Parser) Cell(raw string, isDate bool) (Value, error) {
	if raw == "" {
		return Empty(), nil
	}

	if isDate {
		t, err := time.Parse(p.DateFormat, raw)
		if err != nil {
			if p.Strict {
				return Value{}, fmt.Errorf("parse date %q with layout %q: %w", raw, p.DateFormat, err)
			}
			return Text(raw), nil
		}
		return Date(t), nil
	}

	cleaned := currencyChars.ReplaceAllString(raw, "")
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return Number(f), nil
	}

	return Text(raw), nil
}

// Normalize applies Cell to a value that may already be typed. Non-text
// values are returned unchanged, which makes normalization idempotent.
func (p Parser) Normalize(v Value, isDate bool) (Value, error) {
	if v.kind != KindText {
		return v, nil
	}
	return p.Cell(v.text, isDate)
}
