package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
)

// UpsertInventory adds delta to an item's quantity, creating it if needed.
func (s *SQLiteStore) UpsertInventory(ctx context.Context, name string, delta int) error {
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO inventory (item_name, quantity) VALUES (?, ?)
			 ON CONFLICT(item_name) DO UPDATE SET quantity = quantity + excluded.quantity`,
			name, delta,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert inventory: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Inventory adjusted", "item", name, "delta", delta)
	return nil
}

// ListInventory returns every inventory record ordered by name.
func (s *SQLiteStore) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			"SELECT item_name, quantity, barcode FROM inventory ORDER BY item_name")
		if err != nil {
			return fmt.Errorf("failed to list inventory: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanInventory(rows)
			if err != nil {
				return fmt.Errorf("failed to scan inventory item: %w", err)
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate inventory: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetQuantity returns the stock count for name, or ok=false if untracked.
func (s *SQLiteStore) GetQuantity(ctx context.Context, name string) (int, bool, error) {
	var (
		quantity int
		ok       bool
	)
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		quantity, ok, err = getQuantity(ctx, conn, name)
		return err
	})
	return quantity, ok, err
}

func getQuantity(ctx context.Context, db execer, name string) (int, bool, error) {
	var quantity sql.NullInt64
	err := db.QueryRowContext(ctx,
		"SELECT quantity FROM inventory WHERE item_name = ?", name,
	).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get quantity: %w", err)
	}
	return int(quantity.Int64), true, nil
}

// GetByBarcode returns the first item with the given barcode, or nil.
func (s *SQLiteStore) GetByBarcode(ctx context.Context, barcode string) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			"SELECT item_name, quantity, barcode FROM inventory WHERE barcode = ? ORDER BY item_name LIMIT 1",
			barcode,
		)
		var err error
		item, err = scanInventory(row)
		if errors.Is(err, sql.ErrNoRows) {
			item = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get item by barcode: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetBarcode assigns a barcode to an existing inventory item.
func (s *SQLiteStore) SetBarcode(ctx context.Context, name, barcode string) error {
	var value any
	if barcode != "" {
		value = barcode
	}

	return s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			"UPDATE inventory SET barcode = ? WHERE item_name = ?", value, name)
		if err != nil {
			return fmt.Errorf("failed to set barcode: %w", err)
		}
		ok, err := affected(result)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("inventory item %q: %w", name, storage.ErrNotFound)
		}
		slog.InfoContext(ctx, "Barcode set", "item", name, "barcode", barcode)
		return nil
	})
}

// DecrementGuarded subtracts amount from name only if enough stock exists.
func (s *SQLiteStore) DecrementGuarded(ctx context.Context, name string, amount int) (bool, error) {
	var applied bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		applied, err = decrementGuarded(ctx, conn, name, amount)
		return err
	})
	return applied, err
}

func decrementGuarded(ctx context.Context, db execer, name string, amount int) (bool, error) {
	result, err := db.ExecContext(ctx,
		"UPDATE inventory SET quantity = quantity - ? WHERE item_name = ? AND quantity >= ?",
		amount, name, amount,
	)
	if err != nil {
		return false, fmt.Errorf("failed to decrement inventory: %w", err)
	}
	return affected(result)
}

func scanInventory(row rowScanner) (*models.InventoryItem, error) {
	var (
		item     models.InventoryItem
		quantity sql.NullInt64
		barcode  sql.NullString
	)
	if err := row.Scan(&item.Name, &quantity, &barcode); err != nil {
		return nil, err
	}
	item.Quantity = int(quantity.Int64)
	item.Barcode = barcode.String
	return &item, nil
}
