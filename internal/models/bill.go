package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrPersonNotFound = errors.New("person not found")
	ErrEmptyName      = errors.New("name can't be empty")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// SplitMode selects how a bill is divided between its people.
type SplitMode int

const (
	// SplitEven divides the bill total equally. It is the zero value.
	SplitEven SplitMode = iota
	// SplitItemized divides each item between its assignees and spreads tax
	// and tip equally.
	SplitItemized
)

// String returns "even" or "itemized".
func (m SplitMode) String() string {
	switch m {
	case SplitEven:
		return "even"
	case SplitItemized:
		return "itemized"
	default:
		return fmt.Sprintf("SplitMode(%d)", int(m))
	}
}

// ParseSplitMode accepts "even" and "itemized" in any case. The empty string
// is SplitEven.
func ParseSplitMode(s string) (SplitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "even":
		return SplitEven, nil
	case "itemized", "itemised":
		return SplitItemized, nil
	default:
		return SplitEven, fmt.Errorf("unknown split mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m SplitMode) MarshalText() ([]byte, error) {
	if m != SplitEven && m != SplitItemized {
		return nil, fmt.Errorf("unknown split mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SplitMode) UnmarshalText(text []byte) error {
	mode, err := ParseSplitMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Person is a participant in a bill.
type Person struct {
	// ID is the unique identifier for the person (UUID format unless supplied).
	ID string

	// Name is the display name (e.g., "Alice").
	Name string
}

// BillItem represents a single line item on a bill.
type BillItem struct {
	// ID is the unique identifier for the item (UUID format unless supplied).
	ID string

	// Name is the receipt line description (e.g., "Pizza", "Beer").
	Name string

	// Price is the non-negative pre-tax price of the line.
	Price decimal.Decimal

	// AssignedTo lists the IDs of the people sharing this item, in the order
	// they were assigned. AssignedTo[0] receives the item's rounding remainder.
	AssignedTo []string
}

// Bill is the aggregate a split is computed from.
// Only Items, People, Tax, Tip and SplitMode affect the calculation; the other
// fields are bookkeeping for storage and display.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Title is the human-readable name for the bill.
	// Auto-generated from people when left empty at creation.
	Title string

	Items  []BillItem
	People []Person

	// Tax and Tip are bill-level charges added on top of the item prices.
	Tax decimal.Decimal
	Tip decimal.Decimal

	SplitMode SplitMode

	// Currency is used only to render amounts.
	Currency Currency

	// PayerID optionally names the person who paid the whole bill. When set,
	// everyone else settles their share with this person.
	PayerID string

	// PasscodeHash is a bcrypt hash guarding edits. Empty means unguarded.
	PasscodeHash string

	// CreatedAt and UpdatedAt are Unix timestamps maintained by the store.
	CreatedAt int64
	UpdatedAt int64
}

// NewBill returns an empty bill with a fresh ID. An empty currency code falls
// back to DefaultCurrency.
func NewBill(title string, currency Currency) *Bill {
	if currency.Code == "" {
		currency = DefaultCurrency
	}
	return &Bill{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Currency: currency,
		Tax:      decimal.Zero,
		Tip:      decimal.Zero,
	}
}

// AddItem appends an unassigned item.
func (b *Bill) AddItem(name string, price decimal.Decimal) (BillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return BillItem{}, ErrEmptyName
	}
	if price.IsNegative() {
		return BillItem{}, fmt.Errorf("item %q: %w", name, ErrNegativeAmount)
	}
	item := BillItem{ID: uuid.NewString(), Name: name, Price: price}
	b.Items = append(b.Items, item)
	return item, nil
}

// RemoveItem deletes the item with the given ID.
func (b *Bill) RemoveItem(itemID string) error {
	i := b.itemIndex(itemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	b.Items = slices.Delete(b.Items, i, i+1)
	return nil
}

// AddPerson appends a participant.
func (b *Bill) AddPerson(name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	p := Person{ID: uuid.NewString(), Name: name}
	b.People = append(b.People, p)
	return p, nil
}

// RemovePerson deletes the participant with the given ID. Item assignments
// referencing the person are left in place, and the payer is cleared if it was
// this person.
func (b *Bill) RemovePerson(personID string) error {
	i := b.PersonIndex(personID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	b.People = slices.Delete(b.People, i, i+1)
	if b.PayerID == personID {
		b.PayerID = ""
	}
	return nil
}

// ToggleAssignment assigns the person to the item, or unassigns them if they
// already are. Other assignees keep their relative order. It reports whether
// the person is assigned after the call.
func (b *Bill) ToggleAssignment(itemID, personID string) (bool, error) {
	i := b.itemIndex(itemID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if b.PersonIndex(personID) < 0 {
		return false, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	item := &b.Items[i]
	if j := slices.Index(item.AssignedTo, personID); j >= 0 {
		item.AssignedTo = slices.Delete(item.AssignedTo, j, j+1)
		return false, nil
	}
	item.AssignedTo = append(item.AssignedTo, personID)
	return true, nil
}

// UnassignedItems returns the items no current person is assigned to: those
// with an empty AssignedTo and those whose assignees were all removed. In
// itemized mode their prices are not carried by anyone.
func (b *Bill) UnassignedItems() []BillItem {
	var out []BillItem
	for _, item := range b.Items {
		if !slices.ContainsFunc(item.AssignedTo, func(id string) bool { return b.PersonIndex(id) >= 0 }) {
			out = append(out, item)
		}
	}
	return out
}

// PersonIndex returns the position of the person in People, or -1.
func (b *Bill) PersonIndex(personID string) int {
	return slices.IndexFunc(b.People, func(p Person) bool { return p.ID == personID })
}

func (b *Bill) itemIndex(itemID string) int {
	return slices.IndexFunc(b.Items, func(it BillItem) bool { return it.ID == itemID })
}

// Validate checks the data-integrity rules callers are expected to enforce
// before handing a bill to the calculator.
func (b *Bill) Validate() error {
	if b.SplitMode != SplitEven && b.SplitMode != SplitItemized {
		return fmt.Errorf("unknown split mode %d", int(b.SplitMode))
	}
	if b.Tax.IsNegative() {
		return fmt.Errorf("tax: %w", ErrNegativeAmount)
	}
	if b.Tip.IsNegative() {
		return fmt.Errorf("tip: %w", ErrNegativeAmount)
	}
	for _, item := range b.Items {
		if item.Price.IsNegative() {
			return fmt.Errorf("item %q: %w", item.Name, ErrNegativeAmount)
		}
	}
	if b.PayerID != "" && b.PersonIndex(b.PayerID) < 0 {
		return fmt.Errorf("payer %s: %w", b.PayerID, ErrPersonNotFound)
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without aliasing slices.
func (b *Bill) Clone() *Bill {
	c := *b
	c.People = slices.Clone(b.People)
	c.Items = make([]BillItem, len(b.Items))
	for i, item := range b.Items {
		item.AssignedTo = slices.Clone(item.AssignedTo)
		c.Items[i] = item
	}
	return &c
}
