package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
	"github.com/mmynk/receipts/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInventory(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(newTestStore(t), DefaultLowStockThreshold)

	t.Run("consume within stock", func(t *testing.T) {
		if err := inv.Restock(ctx, "Rice", 10); err != nil {
			t.Fatalf("Restock failed: %v", err)
		}

		result, err := inv.Consume(ctx, "Rice", 4)
		if err != nil {
			t.Fatalf("Consume failed: %v", err)
		}
		if result != Consumed {
			t.Errorf("expected Consumed, got %v", result)
		}

		qty, ok, err := inv.Available(ctx, "Rice")
		if err != nil || !ok || qty != 6 {
			t.Errorf("Available(Rice) = %d, %v, %v; want 6, true, nil", qty, ok, err)
		}
	})

	t.Run("consume beyond stock leaves it unchanged", func(t *testing.T) {
		result, err := inv.Consume(ctx, "Rice", 10)
		if err != nil {
			t.Fatalf("Consume failed: %v", err)
		}
		if result != Insufficient {
			t.Errorf("expected Insufficient, got %v", result)
		}

		qty, _, _ := inv.Available(ctx, "Rice")
		if qty != 6 {
			t.Errorf("expected 6 Rice, got %d", qty)
		}
	})

	t.Run("untracked is distinguished from out of stock", func(t *testing.T) {
		result, err := inv.Consume(ctx, "Ghee", 1)
		if err != nil {
			t.Fatalf("Consume failed: %v", err)
		}
		if result != Untracked {
			t.Errorf("expected Untracked, got %v", result)
		}

		if _, ok, _ := inv.Available(ctx, "Ghee"); ok {
			t.Error("Ghee should remain untracked")
		}
	})

	t.Run("restock then consume is an inverse", func(t *testing.T) {
		before, _, _ := inv.Available(ctx, "Rice")
		if err := inv.Restock(ctx, "Rice", 7); err != nil {
			t.Fatalf("Restock failed: %v", err)
		}
		if _, err := inv.Consume(ctx, "Rice", 7); err != nil {
			t.Fatalf("Consume failed: %v", err)
		}
		after, _, _ := inv.Available(ctx, "Rice")
		if before != after {
			t.Errorf("expected %d Rice, got %d", before, after)
		}
	})

	t.Run("restock rejects bad input", func(t *testing.T) {
		err := inv.Restock(ctx, " ", -1)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Problems) != 2 {
			t.Errorf("expected 2 problems, got %v", verr.Problems)
		}
	})

	t.Run("low stock", func(t *testing.T) {
		if err := inv.Restock(ctx, "Oil", 2); err != nil {
			t.Fatalf("Restock failed: %v", err)
		}
		low, err := inv.LowStock(ctx)
		if err != nil {
			t.Fatalf("LowStock failed: %v", err)
		}
		if len(low) != 1 || low[0].Name != "Oil" {
			t.Errorf("LowStock = %+v, want only Oil", low)
		}
	})

	t.Run("barcodes", func(t *testing.T) {
		if err := inv.SetBarcode(ctx, "Oil", " 8901234 "); err != nil {
			t.Fatalf("SetBarcode failed: %v", err)
		}
		item, err := inv.LookupBarcode(ctx, "8901234")
		if err != nil {
			t.Fatalf("LookupBarcode failed: %v", err)
		}
		if item == nil || item.Name != "Oil" {
			t.Errorf("LookupBarcode = %+v, want Oil", item)
		}

		if err := inv.SetBarcode(ctx, "Ghee", "1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	ctx := context.Background()
	ledger := NewExpenses(newTestStore(t))

	t.Run("amount is derived from items", func(t *testing.T) {
		expense := &models.Expense{
			Date:     "2024-06-01",
			Store:    "ACME",
			Category: "Household",
			Amount:   99,
			Items:    []models.LineItem{{Name: "Soap", Price: 2.5, Quantity: 3}},
		}
		if err := ledger.Record(ctx, expense); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		got, err := ledger.Get(ctx, expense.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Amount != 7.5 {
			t.Errorf("expected amount 7.5, got %v", got.Amount)
		}
		if len(got.Items) != 1 || got.Items[0] != expense.Items[0] {
			t.Errorf("items = %+v", got.Items)
		}
	})

	t.Run("caller amount kept without items", func(t *testing.T) {
		expense := &models.Expense{Date: "2024-06-02", Store: "Cafe", Amount: 12.25}
		if err := ledger.Record(ctx, expense); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if expense.Amount != 12.25 {
			t.Errorf("expected amount 12.25, got %v", expense.Amount)
		}
	})

	t.Run("invalid items are rejected in aggregate", func(t *testing.T) {
		expense := &models.Expense{Items: []models.LineItem{
			{Name: "", Price: 1, Quantity: 1},
			{Name: "Tea", Price: -1, Quantity: 0},
		}}
		err := ledger.Record(ctx, expense)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Problems) != 3 {
			t.Errorf("expected 3 problems, got %v", verr.Problems)
		}
		if expense.ID != 0 {
			t.Error("rejected expense should not be stored")
		}
	})

	t.Run("raw update rejects unparsable text", func(t *testing.T) {
		_, err := ledger.UpdateRaw(ctx, &models.Expense{ID: 1}, "[{name: Soap")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}

		got, _ := ledger.Get(ctx, 1)
		if got.Store != "ACME" {
			t.Errorf("expense changed after rejected edit: %+v", got)
		}
	})

	t.Run("raw update re-derives amount", func(t *testing.T) {
		updated, err := ledger.UpdateRaw(ctx,
			&models.Expense{ID: 1, Date: "2024-06-01", Store: "ACME", Category: "Household"},
			`[{"name":"Soap","price":2.5,"quantity":2},{"name":"Brush","price":4}]`)
		if err != nil {
			t.Fatalf("UpdateRaw failed: %v", err)
		}
		if !updated {
			t.Fatal("expected expense 1 to be updated")
		}
		got, _ := ledger.Get(ctx, 1)
		if got.Amount != 9 {
			t.Errorf("expected amount 9, got %v", got.Amount)
		}
	})

	t.Run("summary and item rows", func(t *testing.T) {
		summary, err := ledger.Summary(ctx, "2024-06")
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary.Count != 2 || summary.Total != 21.25 {
			t.Errorf("summary = %+v", summary)
		}

		rows, err := ledger.ItemRows(ctx, "")
		if err != nil {
			t.Fatalf("ItemRows failed: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 item rows, got %d", len(rows))
		}
	})

	t.Run("delete reports whether the expense existed", func(t *testing.T) {
		found, err := ledger.Delete(ctx, 2)
		if err != nil || !found {
			t.Errorf("Delete(2) = %v, %v; want true, nil", found, err)
		}
		found, err = ledger.Delete(ctx, 2)
		if err != nil || found {
			t.Errorf("second Delete(2) = %v, %v; want false, nil", found, err)
		}
	})
}

func TestItemNamesAreTrimmed(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(newTestStore(t), DefaultLowStockThreshold)

	if err := inv.Restock(ctx, " Soap ", 3); err != nil {
		t.Fatalf("Restock failed: %v", err)
	}
	if qty, ok, _ := inv.Available(ctx, "Soap "); !ok || qty != 3 {
		t.Errorf("Available(%q) = %d, %v; want 3, true", "Soap ", qty, ok)
	}
	if result, err := inv.Consume(ctx, "  Soap", 50); err != nil || result != Insufficient {
		t.Errorf("Consume = %v, %v; want Insufficient", result, err)
	}

	items := []models.LineItem{{Name: " Soap ", Price: 1, Quantity: 2}}
	expense := &models.Expense{Items: items}
	if err := Prepare(expense); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if expense.Items[0].Name != "Soap" {
		t.Errorf("expected trimmed name, got %q", expense.Items[0].Name)
	}
	if items[0].Name != " Soap " {
		t.Error("Prepare should not modify the caller's items")
	}
}
