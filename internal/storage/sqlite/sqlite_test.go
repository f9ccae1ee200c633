package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("first New failed: %v", err)
	}
	if err := first.UpsertInventory(context.Background(), "Rice", 3); err != nil {
		t.Fatalf("UpsertInventory failed: %v", err)
	}
	first.Close()

	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopening existing schema failed: %v", err)
	}
	defer second.Close()

	qty, ok, err := second.GetQuantity(context.Background(), "Rice")
	if err != nil || !ok || qty != 3 {
		t.Errorf("data lost across reopen: qty=%d ok=%v err=%v", qty, ok, err)
	}
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("InsertExpense assigns ID and round-trips items", func(t *testing.T) {
		expense := &models.Expense{
			Date:     "2024-06-01",
			Store:    "ACME",
			Items:    []models.LineItem{{Name: "Soap", Price: 2.5, Quantity: 3}},
			Amount:   7.5,
			Category: "Household",
		}
		if err := store.InsertExpense(ctx, expense); err != nil {
			t.Fatalf("InsertExpense failed: %v", err)
		}
		if expense.ID == 0 {
			t.Fatal("Expected expense ID to be assigned")
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Store != "ACME" || got.Date != "2024-06-01" || got.Category != "Household" {
			t.Errorf("fields mismatch: %+v", got)
		}
		if got.Amount != 7.5 {
			t.Errorf("Amount mismatch: got %f, want 7.5", got.Amount)
		}
		if len(got.Items) != 1 || got.Items[0] != expense.Items[0] {
			t.Errorf("Items mismatch: got %+v, want %+v", got.Items, expense.Items)
		}
	})

	t.Run("GetExpense returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetExpense(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateExpense overwrites fields", func(t *testing.T) {
		expense := &models.Expense{Date: "2024-07-02", Store: "Old", Amount: 1, Category: "A"}
		if err := store.InsertExpense(ctx, expense); err != nil {
			t.Fatalf("InsertExpense failed: %v", err)
		}

		expense.Store = "New"
		expense.Items = []models.LineItem{{Name: "Tea", Price: 4, Quantity: 2}}
		expense.Amount = 8
		updated, err := store.UpdateExpense(ctx, expense)
		if err != nil || !updated {
			t.Fatalf("UpdateExpense: updated=%v err=%v", updated, err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Store != "New" || got.Amount != 8 || len(got.Items) != 1 {
			t.Errorf("update not persisted: %+v", got)
		}

		missing := &models.Expense{ID: 4242, Store: "Ghost"}
		updated, err = store.UpdateExpense(ctx, missing)
		if err != nil || updated {
			t.Errorf("update of missing id: updated=%v err=%v", updated, err)
		}
	})

	t.Run("DeleteExpense of missing id is a no-op", func(t *testing.T) {
		deleted, err := store.DeleteExpense(ctx, 123456)
		if err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if deleted {
			t.Error("expected deleted=false for missing id")
		}
	})
}

func TestListExpensesForMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dates := []string{"2024-05-01", "2024-05-31", "2024-05-xx", "2024-06-01", "2024-5-03", "May 2024", ""}
	for _, d := range dates {
		if err := store.InsertExpense(ctx, &models.Expense{Date: d, Store: "S"}); err != nil {
			t.Fatalf("InsertExpense(%q) failed: %v", d, err)
		}
	}

	got, err := store.ListExpensesForMonth(ctx, "2024-05")
	if err != nil {
		t.Fatalf("ListExpensesForMonth failed: %v", err)
	}

	want := []string{"2024-05-01", "2024-05-31", "2024-05-xx"}
	if len(got) != len(want) {
		t.Fatalf("expected %d expenses, got %d", len(want), len(got))
	}
	for i, e := range got {
		if e.Date != want[i] {
			t.Errorf("expense %d: got date %q, want %q", i, e.Date, want[i])
		}
	}

	all, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(all) != len(dates) {
		t.Errorf("expected %d expenses, got %d", len(dates), len(all))
	}
}

func TestDeleteAllExpensesResetsIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.InsertExpense(ctx, &models.Expense{Date: "2024-01-01"}); err != nil {
			t.Fatalf("InsertExpense failed: %v", err)
		}
	}

	removed, err := store.DeleteAllExpenses(ctx)
	if err != nil {
		t.Fatalf("DeleteAllExpenses failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected 3 removed, got %d", removed)
	}

	expense := &models.Expense{Date: "2024-02-01"}
	if err := store.InsertExpense(ctx, expense); err != nil {
		t.Fatalf("InsertExpense failed: %v", err)
	}
	if expense.ID != 1 {
		t.Errorf("expected ID to restart at 1, got %d", expense.ID)
	}
}

func TestInventory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("UpsertInventory accumulates", func(t *testing.T) {
		if err := store.UpsertInventory(ctx, "Rice", 10); err != nil {
			t.Fatalf("UpsertInventory failed: %v", err)
		}
		if err := store.UpsertInventory(ctx, "Rice", 5); err != nil {
			t.Fatalf("UpsertInventory failed: %v", err)
		}
		qty, ok, err := store.GetQuantity(ctx, "Rice")
		if err != nil || !ok {
			t.Fatalf("GetQuantity: ok=%v err=%v", ok, err)
		}
		if qty != 15 {
			t.Errorf("expected 15, got %d", qty)
		}
	})

	t.Run("GetQuantity of untracked item", func(t *testing.T) {
		_, ok, err := store.GetQuantity(ctx, "Unobtainium")
		if err != nil {
			t.Fatalf("GetQuantity failed: %v", err)
		}
		if ok {
			t.Error("expected untracked item to report ok=false")
		}
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		_, ok, err := store.GetQuantity(ctx, "rice")
		if err != nil {
			t.Fatalf("GetQuantity failed: %v", err)
		}
		if ok {
			t.Error("lowercase name should not match Rice")
		}
	})

	t.Run("DecrementGuarded respects stock", func(t *testing.T) {
		applied, err := store.DecrementGuarded(ctx, "Rice", 15)
		if err != nil || !applied {
			t.Fatalf("exact decrement: applied=%v err=%v", applied, err)
		}
		applied, err = store.DecrementGuarded(ctx, "Rice", 1)
		if err != nil {
			t.Fatalf("DecrementGuarded failed: %v", err)
		}
		if applied {
			t.Error("decrement below zero should not apply")
		}
		applied, err = store.DecrementGuarded(ctx, "Nothing", 1)
		if err != nil || applied {
			t.Errorf("untracked decrement: applied=%v err=%v", applied, err)
		}
	})

	t.Run("barcodes", func(t *testing.T) {
		if err := store.UpsertInventory(ctx, "Soap", 4); err != nil {
			t.Fatalf("UpsertInventory failed: %v", err)
		}
		if err := store.SetBarcode(ctx, "Soap", "8901234"); err != nil {
			t.Fatalf("SetBarcode failed: %v", err)
		}
		item, err := store.GetByBarcode(ctx, "8901234")
		if err != nil {
			t.Fatalf("GetByBarcode failed: %v", err)
		}
		if item == nil || item.Name != "Soap" || item.Quantity != 4 {
			t.Errorf("unexpected item: %+v", item)
		}

		item, err = store.GetByBarcode(ctx, "0000")
		if err != nil || item != nil {
			t.Errorf("unknown barcode: item=%+v err=%v", item, err)
		}

		err = store.SetBarcode(ctx, "Ghost", "1")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListInventory is ordered by name", func(t *testing.T) {
		items, err := store.ListInventory(ctx)
		if err != nil {
			t.Fatalf("ListInventory failed: %v", err)
		}
		if len(items) != 2 || items[0].Name != "Rice" || items[1].Name != "Soap" {
			t.Errorf("unexpected inventory: %+v", items)
		}
	})
}

func TestCommitBill(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertInventory(ctx, "Rice", 10); err != nil {
		t.Fatalf("UpsertInventory failed: %v", err)
	}
	if err := store.UpsertInventory(ctx, "Oil", 1); err != nil {
		t.Fatalf("UpsertInventory failed: %v", err)
	}

	t.Run("decrements tracked items and inserts expense", func(t *testing.T) {
		expense := &models.Expense{
			Date: "2024-06-01",
			Items: []models.LineItem{
				{Name: "Rice", Price: 1, Quantity: 4},
				{Name: "Candles", Price: 2, Quantity: 100},
			},
			Amount: 204,
		}
		shortages, err := store.CommitBill(ctx, expense)
		if err != nil {
			t.Fatalf("CommitBill failed: %v", err)
		}
		if len(shortages) != 0 {
			t.Fatalf("unexpected shortages: %+v", shortages)
		}
		if expense.ID == 0 {
			t.Error("expected expense ID")
		}

		qty, _, _ := store.GetQuantity(ctx, "Rice")
		if qty != 6 {
			t.Errorf("Rice: expected 6, got %d", qty)
		}
		if _, ok, _ := store.GetQuantity(ctx, "Candles"); ok {
			t.Error("untracked item should not be created by a bill")
		}
	})

	t.Run("rolls back everything on any shortage", func(t *testing.T) {
		before, _ := store.ListExpenses(ctx)

		expense := &models.Expense{
			Date: "2024-06-02",
			Items: []models.LineItem{
				{Name: "Rice", Price: 1, Quantity: 2},
				{Name: "Oil", Price: 5, Quantity: 1},
				{Name: "Oil", Price: 5, Quantity: 1},
			},
		}
		shortages, err := store.CommitBill(ctx, expense)
		if err != nil {
			t.Fatalf("CommitBill failed: %v", err)
		}
		if len(shortages) != 1 {
			t.Fatalf("expected 1 shortage, got %+v", shortages)
		}
		if s := shortages[0]; s.Name != "Oil" || s.Requested != 2 || s.Available != 1 {
			t.Errorf("unexpected shortage: %+v", s)
		}

		qty, _, _ := store.GetQuantity(ctx, "Rice")
		if qty != 6 {
			t.Errorf("Rice decrement should have rolled back: got %d", qty)
		}
		after, _ := store.ListExpenses(ctx)
		if len(after) != len(before) {
			t.Errorf("expense should not be inserted: before=%d after=%d", len(before), len(after))
		}
	})
}
