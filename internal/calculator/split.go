// Package calculator implements the split engine: pure functions from a bill
// to its total and to the amount each person owes.
//
// Nothing here reads storage, keeps state or returns errors. Calling Total or
// SplitAmounts twice with an equal bill gives identical results, so both are
// safe to call concurrently and to memoize.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitit/splitit/internal/money"
	"github.com/splitit/splitit/internal/models"
)

// RemainderRecipientIndex is the position that absorbs rounding remainders:
// index 0 of People for bill-level amounts, and index 0 of an item's
// AssignedTo for that item's price. Concentrating the remainder on one
// recipient keeps the shares summing exactly to what was divided.
const RemainderRecipientIndex = 0

// Total returns the sum of all item prices plus tax and tip, unrounded.
func Total(bill *models.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, item := range bill.Items {
		total = total.Add(item.Price)
	}
	return total.Add(bill.Tax).Add(bill.Tip)
}

// SplitAmounts returns what each person owes, aligned with bill.People.
//
// In even mode, and in itemized mode when every item is assigned, the amounts
// sum exactly to Total. In itemized mode an item nobody is assigned to (or
// whose assignees are no longer people on the bill) is carried by nobody, and
// the amounts fall short of Total by its price; see Unaccounted.
func SplitAmounts(bill *models.Bill) []decimal.Decimal {
	n := len(bill.People)
	switch {
	case n == 0:
		return []decimal.Decimal{}
	case n == 1:
		return []decimal.Decimal{Total(bill)}
	case bill.SplitMode == models.SplitItemized:
		return splitItemized(bill)
	default:
		return splitEven(Total(bill), n)
	}
}

// splitEven divides total into n shares; the first absorbs the remainder.
func splitEven(total decimal.Decimal, n int) []decimal.Decimal {
	perHead, remainder := money.Split(total, n)
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = perHead
	}
	shares[RemainderRecipientIndex] = shares[RemainderRecipientIndex].Add(remainder)
	return shares
}

func splitItemized(bill *models.Bill) []decimal.Decimal {
	n := len(bill.People)
	index := make(map[string]int, n)
	for i, p := range bill.People {
		if _, dup := index[p.ID]; !dup {
			index[p.ID] = i
		}
	}

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = decimal.Zero
	}

	for _, item := range bill.Items {
		k := len(item.AssignedTo)
		if k == 0 {
			continue
		}
		share, remainder := money.Split(item.Price, k)
		for pos, personID := range item.AssignedTo {
			i, ok := index[personID]
			if !ok {
				// Dangling assignee: their part of the item goes nowhere.
				continue
			}
			amount := share
			if pos == RemainderRecipientIndex {
				amount = amount.Add(remainder)
			}
			shares[i] = shares[i].Add(amount)
		}
	}

	extras := splitEven(bill.Tax.Add(bill.Tip), n)
	for i := range shares {
		shares[i] = shares[i].Add(extras[i])
	}
	return shares
}

// Unaccounted returns how much of Total the split amounts do not cover:
// Total minus the sum of SplitAmounts. It is zero for every even split and
// for itemized splits where each item is assigned to current people. With no
// people everything is unaccounted.
func Unaccounted(bill *models.Bill, shares []decimal.Decimal) decimal.Decimal {
	return Total(bill).Sub(money.Sum(shares...))
}
