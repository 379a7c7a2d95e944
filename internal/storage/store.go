// Package storage provides abstractions for persistent bill storage.
//
// The split engine never touches storage. Services load a bill through a
// Store, hand the materialized value to the calculator, and save changes back.
package storage

import (
	"context"
	"errors"

	"github.com/splitit/splitit/internal/models"
)

// ErrNotFound is returned (wrapped) when a bill does not exist.
var ErrNotFound = errors.New("bill not found")

// Store defines the interface for bill storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill. Missing bill, item and person IDs,
	// the title and the timestamps are filled in by the store.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID with items, people and assignments
	// in their original order. Returns an error wrapping ErrNotFound if the
	// bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces an existing bill's contents.
	// Returns an error wrapping ErrNotFound if the bill does not exist.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// ModifyBill loads a bill, applies fn to it and saves the result in a
	// single transaction, so concurrent edits of one bill never overwrite
	// each other. If fn returns an error nothing is written and that error
	// is returned unwrapped. Returns an error wrapping ErrNotFound if the
	// bill does not exist.
	ModifyBill(ctx context.Context, billID string, fn func(*models.Bill) error) (*models.Bill, error)

	// DeleteBill removes a bill and everything attached to it.
	// Returns an error wrapping ErrNotFound if the bill does not exist.
	DeleteBill(ctx context.Context, billID string) error

	// ListBills returns all bills, most recently created first.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// Close releases any resources held by the store.
	Close() error
}
