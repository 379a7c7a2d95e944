// Package api defines the v1 messages of the splitit.v1.SplitService RPC API.
//
// Messages travel as JSON. Money is always a decimal string ("12.50"); a JSON
// number is accepted on input but never emitted, so no amount passes through
// binary floating point. Every share carries both the exact amount and a
// display string at two decimal places with the bill's currency symbol.
package api

import "github.com/shopspring/decimal"

// Split modes accepted in Bill.SplitMode.
const (
	SplitModeEven     = "even"
	SplitModeItemized = "itemized"
)

// Person is a participant in a bill.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is one receipt line. AssignedTo holds person IDs in assignment order.
type Item struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	AssignedTo []string        `json:"assigned_to"`
}

// Bill is the input to every calculation.
type Bill struct {
	ID           string          `json:"id,omitempty"`
	Title        string          `json:"title,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	Items        []Item          `json:"items"`
	People       []Person        `json:"people"`
	Tax          decimal.Decimal `json:"tax"`
	Tip          decimal.Decimal `json:"tip"`
	SplitMode    string          `json:"split_mode"`
	PayerID      string          `json:"payer_id,omitempty"`

	// Output only.
	HasPasscode bool  `json:"has_passcode,omitempty"`
	CreatedAt   int64 `json:"created_at,omitempty"`
	UpdatedAt   int64 `json:"updated_at,omitempty"`
}

// Share is what one person owes, aligned with Bill.People.
type Share struct {
	PersonID  string          `json:"person_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// Transfer is a payment from a participant to the bill's payer. From and
// To are person IDs.
type Transfer struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// Split is the calculated result for a bill.
type Split struct {
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	Shares         []Share         `json:"shares"`

	// UnassignedItems names itemized-mode items nobody on the bill carries.
	// Unaccounted is Total minus the sum of the shares.
	UnassignedItems []string        `json:"unassigned_items,omitempty"`
	Unaccounted     decimal.Decimal `json:"unaccounted"`

	Transfers []Transfer `json:"transfers,omitempty"`
}

// BillSummary is a bill's row in a listing.
type BillSummary struct {
	BillID         string          `json:"bill_id"`
	Title          string          `json:"title"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	PeopleCount    int32           `json:"people_count"`
	SplitMode      string          `json:"split_mode"`
	CreatedAt      int64           `json:"created_at"`
}

type CalculateSplitRequest struct {
	Bill *Bill `json:"bill"`
}

type CalculateSplitResponse struct {
	Split *Split `json:"split"`
}

type CreateBillRequest struct {
	Bill *Bill `json:"bill"`
	// Passcode optionally guards later edits.
	Passcode string `json:"passcode,omitempty"`
}

type CreateBillResponse struct {
	Bill  *Bill  `json:"bill"`
	Split *Split `json:"split"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id"`
}

func (x *GetBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

type GetBillResponse struct {
	Bill  *Bill  `json:"bill"`
	Split *Split `json:"split"`
}

type UpdateBillRequest struct {
	Bill *Bill `json:"bill"`
}

func (x *UpdateBillRequest) GetBillID() string {
	if x == nil || x.Bill == nil {
		return ""
	}
	return x.Bill.ID
}

type UpdateBillResponse struct {
	Bill  *Bill  `json:"bill"`
	Split *Split `json:"split"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id"`
}

func (x *DeleteBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

type DeleteBillResponse struct{}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*BillSummary `json:"bills"`
}

type ToggleAssignmentRequest struct {
	BillID   string `json:"bill_id"`
	ItemID   string `json:"item_id"`
	PersonID string `json:"person_id"`
}

func (x *ToggleAssignmentRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

type ToggleAssignmentResponse struct {
	// Assigned reports whether the person is assigned after the toggle.
	Assigned bool   `json:"assigned"`
	Bill     *Bill  `json:"bill"`
	Split    *Split `json:"split"`
}

type ShareBillRequest struct {
	BillID string `json:"bill_id"`
}

func (x *ShareBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

type ShareBillResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

type GetSharedBillRequest struct {
	Token string `json:"token"`
}

type GetSharedBillResponse struct {
	Bill  *Bill  `json:"bill"`
	Split *Split `json:"split"`
	Text  string `json:"text"`
}

type PublishSummaryRequest struct {
	BillID string `json:"bill_id"`
}

func (x *PublishSummaryRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

type PublishSummaryResponse struct {
	URL string `json:"url"`
}
