package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/splitit/splitit/internal/calculator"
	"github.com/splitit/splitit/internal/models"
	"github.com/splitit/splitit/internal/money"
	"github.com/splitit/splitit/pkg/api"
)

var (
	errBillRequired = errors.New("bill is required")
	errDuplicateID  = errors.New("duplicate id")
)

// billFromAPI converts and validates a bill received over the wire.
// IDs left empty are filled in by the store.
func billFromAPI(in *api.Bill) (*models.Bill, error) {
	if in == nil {
		return nil, errBillRequired
	}

	mode, err := models.ParseSplitMode(in.SplitMode)
	if err != nil {
		return nil, err
	}

	currency := models.DefaultCurrency
	if in.CurrencyCode != "" {
		c, ok := models.LookupCurrency(in.CurrencyCode)
		if !ok {
			return nil, fmt.Errorf("unknown currency %q", in.CurrencyCode)
		}
		currency = c
	}

	bill := &models.Bill{
		ID:        in.ID,
		Title:     strings.TrimSpace(in.Title),
		Tax:       in.Tax,
		Tip:       in.Tip,
		SplitMode: mode,
		Currency:  currency,
		PayerID:   in.PayerID,
		People:    make([]models.Person, len(in.People)),
		Items:     make([]models.BillItem, len(in.Items)),
	}
	seen := make(map[string]bool, len(in.People)+len(in.Items))
	checkID := func(kind, id string) error {
		if id == "" {
			return nil
		}
		key := kind + "/" + id
		if seen[key] {
			return fmt.Errorf("%s %q: %w", kind, id, errDuplicateID)
		}
		seen[key] = true
		return nil
	}
	for i, p := range in.People {
		if err := checkID("person", p.ID); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("person %d: %w", i+1, models.ErrEmptyName)
		}
		bill.People[i] = models.Person{ID: p.ID, Name: name}
	}
	for i, item := range in.Items {
		if err := checkID("item", item.ID); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: %w", i+1, models.ErrEmptyName)
		}
		bill.Items[i] = models.BillItem{
			ID:         item.ID,
			Name:       name,
			Price:      item.Price,
			AssignedTo: append([]string(nil), item.AssignedTo...),
		}
	}

	if err := bill.Validate(); err != nil {
		return nil, err
	}
	return bill, nil
}

// billToAPI converts a stored bill for a response. The passcode hash never
// leaves the service.
func billToAPI(b *models.Bill) *api.Bill {
	out := &api.Bill{
		ID:           b.ID,
		Title:        b.Title,
		CurrencyCode: b.Currency.Code,
		Tax:          b.Tax,
		Tip:          b.Tip,
		SplitMode:    b.SplitMode.String(),
		PayerID:      b.PayerID,
		HasPasscode:  b.PasscodeHash != "",
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		People:       make([]api.Person, len(b.People)),
		Items:        make([]api.Item, len(b.Items)),
	}
	for i, p := range b.People {
		out.People[i] = api.Person{ID: p.ID, Name: p.Name}
	}
	for i, item := range b.Items {
		assigned := item.AssignedTo
		if assigned == nil {
			assigned = []string{}
		}
		out.Items[i] = api.Item{
			ID:         item.ID,
			Name:       item.Name,
			Price:      item.Price,
			AssignedTo: assigned,
		}
	}
	return out
}

// buildSplit runs the calculator over b and packages the result.
func buildSplit(b *models.Bill) *api.Split {
	symbol := models.CurrencyOrDefault(b.Currency.Code).Symbol
	shares := calculator.SplitAmounts(b)
	total := calculator.Total(b)

	split := &api.Split{
		Total:          total,
		TotalFormatted: money.Format(total, symbol),
		Shares:         make([]api.Share, len(b.People)),
		Unaccounted:    calculator.Unaccounted(b, shares),
	}
	for i, p := range b.People {
		split.Shares[i] = api.Share{
			PersonID:  p.ID,
			Name:      p.Name,
			Amount:    shares[i],
			Formatted: money.Format(shares[i], symbol),
		}
	}
	if b.SplitMode == models.SplitItemized && len(b.People) > 1 {
		for _, item := range b.UnassignedItems() {
			split.UnassignedItems = append(split.UnassignedItems, item.Name)
		}
	}

	for _, t := range calculator.Settle(b, shares) {
		split.Transfers = append(split.Transfers, api.Transfer{
			From:      t.From,
			To:        t.To,
			Amount:    t.Amount,
			Formatted: money.Format(t.Amount, symbol),
		})
	}
	return split
}

func billSummaryToAPI(b *models.Bill) *api.BillSummary {
	total := calculator.Total(b)
	return &api.BillSummary{
		BillID:         b.ID,
		Title:          b.Title,
		Total:          total,
		TotalFormatted: money.Format(total, models.CurrencyOrDefault(b.Currency.Code).Symbol),
		PeopleCount:    int32(len(b.People)),
		SplitMode:      b.SplitMode.String(),
		CreatedAt:      b.CreatedAt,
	}
}
