package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/receipts/internal/calculator"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
)

// Expenses records bills. Amounts of bills with items are always derived
// from the items; a caller total is kept only for bills without items.
type Expenses struct {
	store storage.ExpenseStore
}

// NewExpenses creates an expense ledger over store.
func NewExpenses(store storage.ExpenseStore) *Expenses {
	return &Expenses{store: store}
}

// Record validates and inserts an expense, setting its ID and amount.
func (l *Expenses) Record(ctx context.Context, expense *models.Expense) error {
	if err := Prepare(expense); err != nil {
		return err
	}
	return l.store.InsertExpense(ctx, expense)
}

// All returns every expense ordered by ID.
func (l *Expenses) All(ctx context.Context) ([]*models.Expense, error) {
	return l.store.ListExpenses(ctx)
}

// ForMonth returns the expenses dated in month (YYYY-MM).
func (l *Expenses) ForMonth(ctx context.Context, month string) ([]*models.Expense, error) {
	return l.store.ListExpensesForMonth(ctx, month)
}

// Get returns one expense. Returns storage.ErrNotFound if absent.
func (l *Expenses) Get(ctx context.Context, id int64) (*models.Expense, error) {
	return l.store.GetExpense(ctx, id)
}

// Update validates and overwrites an expense, reporting whether it existed.
func (l *Expenses) Update(ctx context.Context, expense *models.Expense) (bool, error) {
	if err := Prepare(expense); err != nil {
		return false, err
	}
	return l.store.UpdateExpense(ctx, expense)
}

// UpdateRaw is Update for an edit form that carries items as JSON text.
// Text that does not parse is rejected before anything is written.
func (l *Expenses) UpdateRaw(ctx context.Context, expense *models.Expense, itemsText string) (bool, error) {
	items, err := models.DecodeItems(strings.TrimSpace(itemsText))
	if err != nil {
		return false, &ValidationError{Problems: []string{fmt.Sprintf("items text is not valid: %v", err)}}
	}
	expense.Items = items
	return l.Update(ctx, expense)
}

// Delete removes an expense, reporting whether it existed.
func (l *Expenses) Delete(ctx context.Context, id int64) (bool, error) {
	return l.store.DeleteExpense(ctx, id)
}

// DeleteAll removes every expense and restarts ID numbering.
func (l *Expenses) DeleteAll(ctx context.Context) (int64, error) {
	return l.store.DeleteAllExpenses(ctx)
}

// ItemRows flattens the items of every expense, or of one month when
// month is non-empty.
func (l *Expenses) ItemRows(ctx context.Context, month string) ([]models.ItemRow, error) {
	expenses, err := l.list(ctx, month)
	if err != nil {
		return nil, err
	}
	return calculator.FlattenItems(expenses), nil
}

// Summary totals the expenses of month, or of all time when month is empty.
func (l *Expenses) Summary(ctx context.Context, month string) (calculator.Summary, error) {
	expenses, err := l.list(ctx, month)
	if err != nil {
		return calculator.Summary{}, err
	}
	return calculator.Summarize(expenses), nil
}

func (l *Expenses) list(ctx context.Context, month string) ([]*models.Expense, error) {
	if month == "" {
		return l.All(ctx)
	}
	return l.ForMonth(ctx, month)
}

// Prepare validates an expense's items, trims their names and derives its
// amount. The items are copied, never modified in place.
func Prepare(expense *models.Expense) error {
	verr := &ValidationError{}
	items := make([]models.LineItem, len(expense.Items))
	for i, item := range expense.Items {
		item.Name = strings.TrimSpace(item.Name)
		items[i] = item
		if item.Name == "" {
			verr.add(fmt.Sprintf("item %d: name is required", i+1))
		}
		if item.Price < 0 {
			verr.add(fmt.Sprintf("item %d (%s): price must not be negative", i+1, item.Name))
		}
		if item.Quantity < 1 {
			verr.add(fmt.Sprintf("item %d (%s): quantity must be at least 1", i+1, item.Name))
		}
	}
	if len(expense.Items) == 0 && expense.Amount < 0 {
		verr.add("amount must not be negative")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	// Names are matched against inventory exactly, so they are stored trimmed.
	expense.Items = items
	if len(expense.Items) > 0 {
		expense.Amount = calculator.BillTotal(expense.Items)
	}
	return nil
}
