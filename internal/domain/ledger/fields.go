package ledger

import "strings"

// FieldKind classifies a sheet field name into the closed set of behaviors
// the adapter knows how to fill. KindUnknown is the explicit error path: an
// unrecognized field means the sheet schema and the field map have drifted
// apart, and the run must abort rather than silently write a wrong column.
type FieldKind int

const (
	KindUnknown FieldKind = iota
	KindDate
	KindAccountAmount
	KindDescription
	KindMethod
	KindPayPal
	KindInAccount
	KindPending
	KindRunning
)

// String returns the string representation of FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindDate:
		return "Date"
	case KindAccountAmount:
		return "AccountAmount"
	case KindDescription:
		return "Description"
	case KindMethod:
		return "Method"
	case KindPayPal:
		return "PayPal"
	case KindInAccount:
		return "InAccount"
	case KindPending:
		return "Pending"
	case KindRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// KindOf classifies a field name against the canonical names and the
// configured account names.
func KindOf(field string, accounts []string) FieldKind {
	switch field {
	case FieldDate:
		return KindDate
	case FieldDescription:
		return KindDescription
	case FieldMethod:
		return KindMethod
	case FieldPayPal:
		return KindPayPal
	case FieldInAccount:
		return KindInAccount
	case FieldPending:
		return KindPending
	}
	for _, account := range accounts {
		if field == account {
			return KindAccountAmount
		}
	}
	if strings.Contains(field, FieldRunning) {
		return KindRunning
	}
	return KindUnknown
}
