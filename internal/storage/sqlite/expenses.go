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

const expenseColumns = "id, date, store, items, amount, category"

// execer is satisfied by *sql.Conn and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertExpense appends a new expense row and sets expense.ID.
func (s *SQLiteStore) InsertExpense(ctx context.Context, expense *models.Expense) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		return insertExpense(ctx, conn, expense)
	})
}

func insertExpense(ctx context.Context, db execer, expense *models.Expense) error {
	items, err := models.EncodeItems(expense.Items)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx,
		"INSERT INTO expenses (date, store, items, amount, category) VALUES (?, ?, ?, ?, ?)",
		expense.Date, expense.Store, items, expense.Amount, expense.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}
	expense.ID = id

	slog.InfoContext(ctx, "Expense saved",
		"id", expense.ID,
		"store", expense.Store,
		"date", expense.Date,
		"amount", expense.Amount,
		"items", len(expense.Items),
	)
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	var expense *models.Expense
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
		var err error
		expense, err = scanExpense(ctx, row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("expense %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns every expense ordered by ID.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.queryExpenses(ctx, "SELECT "+expenseColumns+" FROM expenses ORDER BY id")
}

// ListExpensesForMonth returns expenses whose date text starts with month.
func (s *SQLiteStore) ListExpensesForMonth(ctx context.Context, month string) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE substr(date, 1, 7) = ? ORDER BY id",
		month,
	)
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			expense, err := scanExpense(ctx, rows)
			if err != nil {
				return fmt.Errorf("failed to scan expense: %w", err)
			}
			expenses = append(expenses, expense)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateExpense overwrites every field of the expense with the same ID.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) (bool, error) {
	items, err := models.EncodeItems(expense.Items)
	if err != nil {
		return false, err
	}

	var updated bool
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			"UPDATE expenses SET date = ?, store = ?, items = ?, amount = ?, category = ? WHERE id = ?",
			expense.Date, expense.Store, items, expense.Amount, expense.Category, expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		updated, err = affected(result)
		return err
	})
	if err != nil {
		return false, err
	}

	if updated {
		slog.InfoContext(ctx, "Expense updated", "id", expense.ID, "amount", expense.Amount)
	}
	return updated, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		deleted, err = affected(result)
		return err
	})
	if err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "Expense delete", "id", id, "deleted", deleted)
	return deleted, nil
}

// DeleteAllExpenses removes every expense and resets the AUTOINCREMENT
// sequence so numbering restarts at 1.
func (s *SQLiteStore) DeleteAllExpenses(ctx context.Context) (int64, error) {
	var removed int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM expenses")
		if err != nil {
			return fmt.Errorf("failed to delete expenses: %w", err)
		}
		removed, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted expenses: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'expenses'"); err != nil {
			return fmt.Errorf("failed to reset expense ids: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "All expenses deleted", "count", removed)
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanExpense reads one expense row. Columns are nullable because rows
// written by older versions of the tracker may carry NULLs.
func scanExpense(ctx context.Context, row rowScanner) (*models.Expense, error) {
	var (
		expense                      models.Expense
		date, store, items, category sql.NullString
		amount                       sql.NullFloat64
	)
	if err := row.Scan(&expense.ID, &date, &store, &items, &amount, &category); err != nil {
		return nil, err
	}
	expense.Date = date.String
	expense.Store = store.String
	expense.Amount = amount.Float64
	expense.Category = category.String

	decoded, err := models.DecodeItems(items.String)
	if err != nil {
		slog.WarnContext(ctx, "Expense has unreadable items", "id", expense.ID, "error", err)
	}
	expense.Items = decoded
	return &expense, nil
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
