// Package ledger applies business rules on top of the expense and
// inventory stores.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/receipts/internal/calculator"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
)

// ConsumeResult describes the outcome of a Consume call.
type ConsumeResult int

const (
	// Consumed means the stock was decremented.
	Consumed ConsumeResult = iota
	// Untracked means the item has no inventory record.
	Untracked
	// Insufficient means the item is tracked but has too little stock.
	Insufficient
)

func (r ConsumeResult) String() string {
	switch r {
	case Consumed:
		return "consumed"
	case Untracked:
		return "untracked"
	case Insufficient:
		return "insufficient"
	default:
		return fmt.Sprintf("ConsumeResult(%d)", int(r))
	}
}

// DefaultLowStockThreshold is the quantity at or below which an item is
// reported as running low.
const DefaultLowStockThreshold = 5

// Inventory tracks stock counts. Stock can be added at any time but only
// consumed when enough is present.
type Inventory struct {
	store     storage.InventoryStore
	threshold int
}

// NewInventory creates an inventory ledger over store.
func NewInventory(store storage.InventoryStore, lowStockThreshold int) *Inventory {
	if lowStockThreshold < 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Inventory{store: store, threshold: lowStockThreshold}
}

// Restock adds qty units of name, creating the record if needed.
func (inv *Inventory) Restock(ctx context.Context, name string, qty int) error {
	verr := &ValidationError{}
	name = strings.TrimSpace(name)
	if name == "" {
		verr.add("item name is required")
	}
	if qty < 0 {
		verr.add(fmt.Sprintf("quantity for %q must not be negative", name))
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	return inv.store.UpsertInventory(ctx, name, qty)
}

// Available returns the stock count for name. ok is false when the item
// is untracked, which callers treat as unlimited rather than zero.
func (inv *Inventory) Available(ctx context.Context, name string) (quantity int, ok bool, err error) {
	return inv.store.GetQuantity(ctx, strings.TrimSpace(name))
}

// Consume removes qty units of name if enough stock is present.
func (inv *Inventory) Consume(ctx context.Context, name string, qty int) (ConsumeResult, error) {
	name = strings.TrimSpace(name)
	if qty < 0 {
		return Insufficient, &ValidationError{
			Problems: []string{fmt.Sprintf("quantity for %q must not be negative", name)},
		}
	}

	applied, err := inv.store.DecrementGuarded(ctx, name, qty)
	if err != nil {
		return Insufficient, err
	}
	if applied {
		return Consumed, nil
	}

	// The guard matched nothing: find out whether the row is missing or short.
	_, tracked, err := inv.store.GetQuantity(ctx, name)
	if err != nil {
		return Insufficient, err
	}
	if !tracked {
		return Untracked, nil
	}
	slog.DebugContext(ctx, "Consume rejected", "item", name, "requested", qty)
	return Insufficient, nil
}

// List returns every inventory record ordered by name.
func (inv *Inventory) List(ctx context.Context) ([]*models.InventoryItem, error) {
	return inv.store.ListInventory(ctx)
}

// LowStock returns the records at or below the low-stock threshold.
func (inv *Inventory) LowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	items, err := inv.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.LowStock(items, inv.threshold), nil
}

// Threshold returns the low-stock threshold.
func (inv *Inventory) Threshold() int {
	return inv.threshold
}

// LookupBarcode returns the item carrying barcode, or nil if none does.
func (inv *Inventory) LookupBarcode(ctx context.Context, barcode string) (*models.InventoryItem, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, &ValidationError{Problems: []string{"barcode is required"}}
	}
	return inv.store.GetByBarcode(ctx, barcode)
}

// SetBarcode assigns barcode to a tracked item. An empty barcode clears it.
// Returns storage.ErrNotFound if the item is untracked.
func (inv *Inventory) SetBarcode(ctx context.Context, name, barcode string) error {
	return inv.store.SetBarcode(ctx, strings.TrimSpace(name), strings.TrimSpace(barcode))
}
