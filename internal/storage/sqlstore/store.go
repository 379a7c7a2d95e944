// Package sqlstore implements storage.Store on top of database/sql.
// The sqlite and postgres packages open a driver and hand the connection here.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/splitit/splitit/internal/models"
	"github.com/splitit/splitit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// New wraps an open database. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect, now: time.Now}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dialect reports which database the store talks to.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateBill persists a new bill to the database.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = s.now().Unix()
	}
	bill.UpdatedAt = bill.CreatedAt
	if bill.Title == "" {
		bill.Title = generateTitle(bill.People, s.now())
	}
	if bill.Currency.Code == "" {
		bill.Currency = models.DefaultCurrency
	}
	fillIDs(bill)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.dialect.Rebind(
		`INSERT INTO bills (id, title, currency_code, tax, tip, split_mode, payer_id, passcode_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		bill.ID, bill.Title, bill.Currency.Code, bill.Tax, bill.Tip, bill.SplitMode.String(),
		bill.PayerID, bill.PasscodeHash, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := s.insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBill replaces the bill row and all of its people, items and assignments.
func (s *Store) UpdateBill(ctx context.Context, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.updateBill(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ModifyBill reads, changes and writes a bill inside one transaction.
func (s *Store) ModifyBill(ctx context.Context, billID string, fn func(*models.Bill) error) (*models.Bill, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Postgres holds the row lock until commit. SQLite runs on a single
	// connection, so the open transaction already excludes other writers.
	var id string
	err = tx.QueryRowContext(ctx, s.dialect.Rebind("SELECT id FROM bills WHERE id = ?"+s.dialect.LockSuffix), billID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock bill: %w", err)
	}

	bill, err := s.getBill(ctx, tx, billID)
	if err != nil {
		return nil, err
	}
	if err := fn(bill); err != nil {
		return nil, err
	}
	bill.ID = billID

	if err := s.updateBill(ctx, tx, bill); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bill, nil
}

func (s *Store) updateBill(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	bill.UpdatedAt = s.now().Unix()
	if bill.Currency.Code == "" {
		bill.Currency = models.DefaultCurrency
	}
	fillIDs(bill)

	res, err := tx.ExecContext(ctx, s.dialect.Rebind(
		`UPDATE bills SET title = ?, currency_code = ?, tax = ?, tip = ?, split_mode = ?,
		 payer_id = ?, passcode_hash = ?, updated_at = ? WHERE id = ?`),
		bill.Title, bill.Currency.Code, bill.Tax, bill.Tip, bill.SplitMode.String(),
		bill.PayerID, bill.PasscodeHash, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if err := requireAffected(res, bill.ID); err != nil {
		return err
	}

	if err := s.deleteContents(ctx, tx, bill.ID); err != nil {
		return err
	}
	if err := s.insertContents(ctx, tx, bill); err != nil {
		return err
	}

	// Keep created_at from the stored row.
	if err := tx.QueryRowContext(ctx, s.dialect.Rebind("SELECT created_at FROM bills WHERE id = ?"), bill.ID).Scan(&bill.CreatedAt); err != nil {
		return fmt.Errorf("failed to read created_at: %w", err)
	}
	return nil
}

// DeleteBill removes a bill and its contents.
func (s *Store) DeleteBill(ctx context.Context, billID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteContents(ctx, tx, billID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, s.dialect.Rebind("DELETE FROM bills WHERE id = ?"), billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if err := requireAffected(res, billID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including all items, people and assignments.
func (s *Store) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	return s.getBill(ctx, s.db, billID)
}

// ListBills retrieves every bill, newest first.
func (s *Store) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM bills ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	bills := make([]*models.Bill, 0, len(ids))
	for _, id := range ids {
		bill, err := s.getBill(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

func (s *Store) getBill(ctx context.Context, q querier, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var currencyCode, splitMode string
	err := q.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT id, title, currency_code, tax, tip, split_mode, payer_id, passcode_hash, created_at, updated_at
		 FROM bills WHERE id = ?`),
		billID,
	).Scan(&bill.ID, &bill.Title, &currencyCode, &bill.Tax, &bill.Tip, &splitMode,
		&bill.PayerID, &bill.PasscodeHash, &bill.CreatedAt, &bill.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	bill.Currency = models.CurrencyOrDefault(currencyCode)
	if bill.SplitMode, err = models.ParseSplitMode(splitMode); err != nil {
		return nil, fmt.Errorf("bill %s: %w", billID, err)
	}

	// Get people
	rows, err := q.QueryContext(ctx, s.dialect.Rebind(
		"SELECT id, name FROM people WHERE bill_id = ? ORDER BY position"), billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		bill.People = append(bill.People, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	// Get assignments for all items at once
	assignments := make(map[string][]string)
	assignRows, err := q.QueryContext(ctx, s.dialect.Rebind(
		"SELECT item_id, person_id FROM item_assignments WHERE bill_id = ? ORDER BY item_id, position"), billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}
	for assignRows.Next() {
		var itemID, personID string
		if err := assignRows.Scan(&itemID, &personID); err != nil {
			assignRows.Close()
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments[itemID] = append(assignments[itemID], personID)
	}
	assignRows.Close()
	if err := assignRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	// Get items
	itemRows, err := q.QueryContext(ctx, s.dialect.Rebind(
		"SELECT id, name, price FROM items WHERE bill_id = ? ORDER BY position"), billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item models.BillItem
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.AssignedTo = assignments[item.ID]
		bill.Items = append(bill.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return bill, nil
}

func (s *Store) insertContents(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for i, p := range bill.People {
		_, err := tx.ExecContext(ctx, s.dialect.Rebind(
			"INSERT INTO people (bill_id, id, name, position) VALUES (?, ?, ?, ?)"),
			bill.ID, p.ID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i, item := range bill.Items {
		_, err := tx.ExecContext(ctx, s.dialect.Rebind(
			"INSERT INTO items (bill_id, id, name, price, position) VALUES (?, ?, ?, ?, ?)"),
			bill.ID, item.ID, item.Name, item.Price, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, personID := range item.AssignedTo {
			_, err := tx.ExecContext(ctx, s.dialect.Rebind(
				"INSERT INTO item_assignments (bill_id, item_id, person_id, position) VALUES (?, ?, ?, ?)"),
				bill.ID, item.ID, personID, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}
	return nil
}

func (s *Store) deleteContents(ctx context.Context, tx *sql.Tx, billID string) error {
	for _, table := range []string{"item_assignments", "items", "people"} {
		if _, err := tx.ExecContext(ctx, s.dialect.Rebind("DELETE FROM "+table+" WHERE bill_id = ?"), billID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}
	return nil
}

func requireAffected(res sql.Result, billID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	return nil
}

// fillIDs assigns UUIDs to items and people that arrive without one.
// Assignments reference people by ID, so a person without an ID cannot have
// been assigned anything yet.
func fillIDs(bill *models.Bill) {
	for i := range bill.People {
		if bill.People[i].ID == "" {
			bill.People[i].ID = uuid.NewString()
		}
	}
	for i := range bill.Items {
		if bill.Items[i].ID == "" {
			bill.Items[i].ID = uuid.NewString()
		}
	}
}

// generateTitle creates an auto-generated title from people.
func generateTitle(people []models.Person, now time.Time) string {
	if len(people) == 0 {
		return fmt.Sprintf("Bill - %s", now.Format("Jan 2, 2006"))
	}
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
