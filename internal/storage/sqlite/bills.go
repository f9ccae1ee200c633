package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
)

// errShortage forces a rollback when stock is insufficient.
var errShortage = errors.New("insufficient stock")

// CommitBill consumes inventory for every tracked item on the expense and
// inserts the expense in a single transaction. Quantities for lines sharing
// a name are summed. If any tracked item is short, nothing is written and
// the shortages are returned.
func (s *SQLiteStore) CommitBill(ctx context.Context, expense *models.Expense) ([]storage.Shortage, error) {
	var shortages []storage.Shortage

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		names, requested := requestedByName(expense.Items)

		for _, name := range names {
			available, tracked, err := getQuantity(ctx, tx, name)
			if err != nil {
				return err
			}
			if !tracked {
				continue
			}

			applied, err := decrementGuarded(ctx, tx, name, requested[name])
			if err != nil {
				return err
			}
			if !applied {
				shortages = append(shortages, storage.Shortage{
					Name:      name,
					Requested: requested[name],
					Available: available,
				})
			}
		}

		if len(shortages) > 0 {
			return errShortage
		}

		return insertExpense(ctx, tx, expense)
	})
	if errors.Is(err, errShortage) {
		slog.WarnContext(ctx, "Bill commit rejected", "shortages", len(shortages))
		return shortages, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// requestedByName sums quantities per item name, preserving first-seen order.
func requestedByName(items []models.LineItem) ([]string, map[string]int) {
	var names []string
	requested := make(map[string]int, len(items))
	for _, item := range items {
		if _, seen := requested[item.Name]; !seen {
			names = append(names, item.Name)
		}
		requested[item.Name] += item.Quantity
	}
	return names, requested
}
