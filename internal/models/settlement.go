package models

import "github.com/shopspring/decimal"

// Transfer is one payment that settles a participant's share of a bill with
// the person who paid it.
type Transfer struct {
	// From is the ID of the participant who owes money.
	From string

	// To is the ID of the payer being reimbursed.
	To string

	// Amount is the participant's full share of the bill.
	Amount decimal.Decimal
}
