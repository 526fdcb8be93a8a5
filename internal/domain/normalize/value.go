// Package normalize converts raw spreadsheet and bank cells into typed
// values. A cell is either empty, free text, a number, or a calendar date;
// everything downstream (the adapter, the scorer) works with these typed
// values instead of raw strings.
package normalize

import (
	"fmt"
	"time"
)

// Kind identifies the typed content of a Value.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindDate
)

// Value is a typed cell value. The zero Value is empty.
type Value struct {
	kind Kind
	text string
	num  float64
	date time.Time
}

// Empty returns the empty value. Empty is distinct from the number zero.
func Empty() Value { return Value{} }

// Text returns a text value. An empty string is the empty value.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date returns a date value truncated to day granularity.
func Date(t time.Time) Value {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Value{kind: KindDate, date: day}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value is empty.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Text returns the text content, or "" for non-text values.
func (v Value) Text() string { return v.text }

// Number returns the numeric content and whether the value is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Date returns the date content and whether the value is a date.
func (v Value) Date() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// String renders the value for logging and display.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return fmt.Sprintf("%.2f", v.num)
	case KindDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}
