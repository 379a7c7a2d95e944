package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitit/splitit/internal/models"
)

// Settle turns split amounts into the payments that reimburse the bill's
// payer. Each participant other than the payer with a positive share owes the
// payer that share; transfers follow People order.
//
// A bill without a payer, or whose payer is not one of its people, needs no
// transfers. shares must be aligned with bill.People (the output of
// SplitAmounts).
func Settle(bill *models.Bill, shares []decimal.Decimal) []models.Transfer {
	if bill.PayerID == "" || bill.PersonIndex(bill.PayerID) < 0 {
		return nil
	}

	var transfers []models.Transfer
	for i, person := range bill.People {
		if i >= len(shares) {
			break
		}
		if person.ID == bill.PayerID || !shares[i].IsPositive() {
			continue
		}
		transfers = append(transfers, models.Transfer{
			From:   person.ID,
			To:     bill.PayerID,
			Amount: shares[i],
		})
	}
	return transfers
}
