// Package export renders a bill's split for people outside the app: a
// shareable text block, a one-page PDF, and publishing that PDF to S3.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/splitit/splitit/internal/calculator"
	"github.com/splitit/splitit/internal/models"
)

// Line is one person's row in a summary.
type Line struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the rendered view of a split, aligned with the bill's people.
type Summary struct {
	Title    string           `json:"title"`
	Currency models.Currency  `json:"currency"`
	Mode     models.SplitMode `json:"mode"`
	Lines    []Line           `json:"shares"`
	Total    decimal.Decimal  `json:"total"`

	// Unassigned names the items nobody carries in an itemized split.
	Unassigned []string `json:"unassigned_items,omitempty"`
}

// NewSummary computes the split of bill and packages it for rendering.
func NewSummary(bill *models.Bill) Summary {
	shares := calculator.SplitAmounts(bill)
	s := Summary{
		Title:    bill.Title,
		Currency: bill.Currency,
		Mode:     bill.SplitMode,
		Total:    calculator.Total(bill),
		Lines:    make([]Line, len(bill.People)),
	}
	if s.Currency.Code == "" {
		s.Currency = models.DefaultCurrency
	}
	for i, p := range bill.People {
		s.Lines[i] = Line{Name: p.Name, Amount: shares[i]}
	}
	if bill.SplitMode == models.SplitItemized && len(bill.People) > 1 {
		for _, item := range bill.UnassignedItems() {
			s.Unassigned = append(s.Unassigned, item.Name)
		}
	}
	return s
}
