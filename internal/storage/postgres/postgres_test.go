package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitit/splitit/internal/models"
)

// TestPostgresRoundTrip runs only when SPLITIT_TEST_DATABASE_URL points at a
// disposable database.
func TestPostgresRoundTrip(t *testing.T) {
	dsn := os.Getenv("SPLITIT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SPLITIT_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	bill := &models.Bill{
		People: []models.Person{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
		Items: []models.BillItem{
			{Name: "Dumplings", Price: decimal.RequireFromString("10.00"), AssignedTo: []string{"b", "a"}},
		},
		Tax:       decimal.RequireFromString("0.80"),
		Tip:       decimal.Zero,
		SplitMode: models.SplitItemized,
	}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	defer store.DeleteBill(ctx, bill.ID)

	got, err := store.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if !got.Tax.Equal(bill.Tax) || got.SplitMode != models.SplitItemized {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if a := got.Items[0].AssignedTo; len(a) != 2 || a[0] != "b" {
		t.Errorf("assignment order lost: %v", a)
	}

	got, err = store.ModifyBill(ctx, bill.ID, func(b *models.Bill) error {
		_, err := b.ToggleAssignment(b.Items[0].ID, "b")
		return err
	})
	if err != nil {
		t.Fatalf("ModifyBill failed: %v", err)
	}
	if a := got.Items[0].AssignedTo; len(a) != 1 || a[0] != "a" {
		t.Errorf("assignments after toggle = %v, want [a]", a)
	}
}
