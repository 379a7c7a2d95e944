package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitit/splitit/internal/money"
	"github.com/splitit/splitit/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func people(names ...string) []models.Person {
	out := make([]models.Person, len(names))
	for i, n := range names {
		out[i] = models.Person{ID: n, Name: n}
	}
	return out
}

func assertShares(t *testing.T, got []decimal.Decimal, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d shares %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if !got[i].Equal(d(want[i])) {
			t.Errorf("share[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name string
		bill models.Bill
		want string
	}{
		{
			name: "empty bill",
			bill: models.Bill{},
			want: "0",
		},
		{
			name: "items tax and tip",
			bill: models.Bill{
				Items: []models.BillItem{{Price: d("12.99")}, {Price: d("7.01")}},
				Tax:   d("1.60"),
				Tip:   d("3.00"),
			},
			want: "24.60",
		},
		{
			name: "unassigned items still count",
			bill: models.Bill{
				Items:     []models.BillItem{{Price: d("5.00")}},
				SplitMode: models.SplitItemized,
			},
			want: "5",
		},
		{
			name: "sub-cent precision is kept",
			bill: models.Bill{
				Items: []models.BillItem{{Price: d("0.005")}},
				Tax:   d("0.001"),
			},
			want: "0.006",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Total(&tt.bill); !got.Equal(d(tt.want)) {
				t.Errorf("Total() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSplitAmounts(t *testing.T) {
	tests := []struct {
		name string
		bill models.Bill
		want []string
	}{
		{
			name: "no participants",
			bill: models.Bill{Items: []models.BillItem{{Price: d("10.00")}}},
			want: []string{},
		},
		{
			name: "single payer owes everything in even mode",
			bill: models.Bill{
				Items:  []models.BillItem{{Price: d("10.00")}},
				People: people("A"),
				Tax:    d("0.75"),
			},
			want: []string{"10.75"},
		},
		{
			name: "single payer owes everything in itemized mode, even unassigned",
			bill: models.Bill{
				Items:     []models.BillItem{{Price: d("10.00")}},
				People:    people("A"),
				Tip:       d("2.00"),
				SplitMode: models.SplitItemized,
			},
			want: []string{"12.00"},
		},
		{
			name: "even three-way puts the cent on participant zero",
			bill: models.Bill{
				Items:  []models.BillItem{{Price: d("10.00")}},
				People: people("A", "B", "C"),
			},
			want: []string{"3.34", "3.33", "3.33"},
		},
		{
			name: "even split where rounding goes up gives a negative remainder",
			bill: models.Bill{
				Items:  []models.BillItem{{Price: d("20.00")}},
				People: people("A", "B", "C"),
			},
			want: []string{"6.66", "6.67", "6.67"},
		},
		{
			name: "even split with tax and tip",
			bill: models.Bill{
				Items:  []models.BillItem{{Price: d("30.00")}},
				People: people("A", "B"),
				Tax:    d("2.40"),
				Tip:    d("4.50"),
			},
			want: []string{"18.45", "18.45"},
		},
		{
			name: "even split ignores assignments",
			bill: models.Bill{
				Items:  []models.BillItem{{Price: d("9.00"), AssignedTo: []string{"A"}}},
				People: people("A", "B", "C"),
			},
			want: []string{"3.00", "3.00", "3.00"},
		},
		{
			name: "itemized three-way item with even extras",
			bill: models.Bill{
				Items:     []models.BillItem{{Price: d("10.00"), AssignedTo: []string{"A", "B", "C"}}},
				People:    people("A", "B", "C"),
				Tax:       d("1.00"),
				Tip:       d("2.00"),
				SplitMode: models.SplitItemized,
			},
			want: []string{"4.34", "4.33", "4.33"},
		},
		{
			name: "itemized remainder follows assignment order, not people order",
			bill: models.Bill{
				Items:     []models.BillItem{{Price: d("10.00"), AssignedTo: []string{"C", "A", "B"}}},
				People:    people("A", "B", "C"),
				SplitMode: models.SplitItemized,
			},
			want: []string{"3.33", "3.33", "3.34"},
		},
		{
			name: "itemized personal items",
			bill: models.Bill{
				Items: []models.BillItem{
					{Name: "Pizza", Price: d("20.00"), AssignedTo: []string{"A", "B"}},
					{Name: "Salad", Price: d("10.00"), AssignedTo: []string{"A"}},
				},
				People:    people("A", "B"),
				Tax:       d("3.00"),
				SplitMode: models.SplitItemized,
			},
			want: []string{"21.50", "11.50"},
		},
		{
			name: "itemized extras remainder lands on participant zero",
			bill: models.Bill{
				Items:     []models.BillItem{{Price: d("3.00"), AssignedTo: []string{"B"}}},
				People:    people("A", "B", "C"),
				Tax:       d("0.50"),
				Tip:       d("0.50"),
				SplitMode: models.SplitItemized,
			},
			want: []string{"0.34", "3.33", "0.33"},
		},
		{
			name: "itemized unassigned item is carried by nobody",
			bill: models.Bill{
				Items: []models.BillItem{
					{Price: d("8.00"), AssignedTo: []string{"A"}},
					{Price: d("5.00")},
				},
				People:    people("A", "B"),
				SplitMode: models.SplitItemized,
			},
			want: []string{"8.00", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertShares(t, SplitAmounts(&tt.bill), tt.want...)
		})
	}
}

func TestSplitAmounts_DanglingAssignee(t *testing.T) {
	// "Z" was removed from the bill after being assigned to the wine.
	bill := &models.Bill{
		Items: []models.BillItem{
			{Name: "Pasta", Price: d("12.00"), AssignedTo: []string{"A", "B"}},
			{Name: "Wine", Price: d("9.00"), AssignedTo: []string{"Z"}},
		},
		People:    people("A", "B"),
		SplitMode: models.SplitItemized,
	}

	shares := SplitAmounts(bill)
	assertShares(t, shares, "6.00", "6.00")

	sum := money.Sum(shares...)
	if sum.GreaterThanOrEqual(Total(bill)) {
		t.Fatalf("sum %s should be strictly less than total %s", sum, Total(bill))
	}
	if gap := Unaccounted(bill, shares); !gap.Equal(d("9.00")) {
		t.Errorf("Unaccounted = %s, want the wine's 9.00", gap)
	}
}

func TestSplitAmounts_DanglingRemainderRecipient(t *testing.T) {
	// The first assignee is gone, so the item's remainder cent goes with them.
	bill := &models.Bill{
		Items:     []models.BillItem{{Price: d("10.00"), AssignedTo: []string{"Z", "A", "B"}}},
		People:    people("A", "B"),
		SplitMode: models.SplitItemized,
	}

	shares := SplitAmounts(bill)
	assertShares(t, shares, "3.33", "3.33")
	if gap := Unaccounted(bill, shares); !gap.Equal(d("3.34")) {
		t.Errorf("Unaccounted = %s, want 3.34", gap)
	}
}

func TestSplitAmounts_Idempotent(t *testing.T) {
	bill := &models.Bill{
		Items: []models.BillItem{
			{Price: d("17.35"), AssignedTo: []string{"B", "A"}},
			{Price: d("4.99"), AssignedTo: []string{"C"}},
		},
		People:    people("A", "B", "C"),
		Tax:       d("1.91"),
		Tip:       d("3.33"),
		SplitMode: models.SplitItemized,
	}

	first, second := SplitAmounts(bill), SplitAmounts(bill)
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("share[%d] changed between calls: %s then %s", i, first[i], second[i])
		}
	}
	if Total(bill).String() != Total(bill).String() {
		t.Error("Total changed between calls")
	}
}

// randomBill builds a bill with up to two decimal places on every amount.
func randomBill(r *rand.Rand, mode models.SplitMode) *models.Bill {
	cents := func(max int64) decimal.Decimal {
		return decimal.New(r.Int63n(max), -2)
	}

	n := 1 + r.Intn(9)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	bill := &models.Bill{
		People:    people(names...),
		Tax:       cents(5000),
		Tip:       cents(5000),
		SplitMode: mode,
	}
	itemCount := r.Intn(8)
	for i := 0; i < itemCount; i++ {
		item := models.BillItem{ID: fmt.Sprintf("i%d", i), Price: cents(100000)}
		for _, p := range r.Perm(n)[:1+r.Intn(n)] {
			item.AssignedTo = append(item.AssignedTo, names[p])
		}
		bill.Items = append(bill.Items, item)
	}
	return bill
}

func TestSplitAmounts_Conservation(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, mode := range []models.SplitMode{models.SplitEven, models.SplitItemized} {
		t.Run(mode.String(), func(t *testing.T) {
			for i := 0; i < 500; i++ {
				bill := randomBill(r, mode)
				shares := SplitAmounts(bill)
				if len(shares) != len(bill.People) {
					t.Fatalf("got %d shares for %d people", len(shares), len(bill.People))
				}
				if sum, total := money.Sum(shares...), Total(bill); !sum.Equal(total) {
					t.Fatalf("bill %d: sum %s != total %s (shares %v)", i, sum, total, shares)
				}
				for j, s := range shares[1:] {
					if s.Exponent() < -money.Scale {
						t.Fatalf("share[%d] = %s has more than two decimal places", j+1, s)
					}
				}
			}
		})
	}
}
