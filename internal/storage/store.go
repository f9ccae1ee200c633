// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/receipts/internal/models"
)

// ErrNotFound is returned when a record looked up by identity does not exist.
var ErrNotFound = errors.New("record not found")

// ExpenseStore persists expense records.
type ExpenseStore interface {
	// InsertExpense appends a new expense and populates expense.ID.
	InsertExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID. Returns ErrNotFound if absent.
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)

	// ListExpenses returns every expense ordered by ID.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListExpensesForMonth returns expenses whose date starts with month
	// (YYYY-MM). The comparison is textual; malformed dates never match.
	ListExpensesForMonth(ctx context.Context, month string) ([]*models.Expense, error)

	// UpdateExpense overwrites the expense with the same ID.
	// Reports whether a row was changed.
	UpdateExpense(ctx context.Context, expense *models.Expense) (bool, error)

	// DeleteExpense removes an expense. Deleting a missing ID is not an
	// error; the result reports whether a row was removed.
	DeleteExpense(ctx context.Context, id int64) (bool, error)

	// DeleteAllExpenses removes every expense and resets the ID counter so
	// the next insert is assigned ID 1. Returns the number of rows removed.
	DeleteAllExpenses(ctx context.Context) (int64, error)
}

// InventoryStore persists stock counts keyed by item name.
type InventoryStore interface {
	// UpsertInventory adds delta to the item's quantity, creating the item
	// with quantity delta if it does not exist. Delta may be negative.
	UpsertInventory(ctx context.Context, name string, delta int) error

	// ListInventory returns every inventory record ordered by name.
	ListInventory(ctx context.Context) ([]*models.InventoryItem, error)

	// GetQuantity returns the item's quantity, or ok=false if untracked.
	GetQuantity(ctx context.Context, name string) (quantity int, ok bool, err error)

	// GetByBarcode returns the first item carrying barcode, or nil.
	GetByBarcode(ctx context.Context, barcode string) (*models.InventoryItem, error)

	// SetBarcode assigns a barcode to an existing item.
	// Returns ErrNotFound if the item is untracked.
	SetBarcode(ctx context.Context, name, barcode string) error

	// DecrementGuarded subtracts amount only when quantity >= amount.
	// Reports whether the row was changed; false means either untracked or
	// insufficient stock.
	DecrementGuarded(ctx context.Context, name string, amount int) (bool, error)
}

// Shortage describes one item that could not be consumed.
type Shortage struct {
	Name      string
	Requested int
	Available int
}

// BillCommitter writes a bill's inventory consumption and its expense
// atomically.
type BillCommitter interface {
	// CommitBill decrements every tracked item on the expense by its
	// requested quantity and inserts the expense, all in one transaction.
	// Untracked items are not decremented. If any tracked item lacks stock
	// nothing is written and the shortages are returned with a nil error.
	CommitBill(ctx context.Context, expense *models.Expense) ([]Shortage, error)
}

// Store is the full persistence contract used by the application.
type Store interface {
	ExpenseStore
	InventoryStore
	BillCommitter

	// Close releases any resources held by the store.
	Close() error
}
