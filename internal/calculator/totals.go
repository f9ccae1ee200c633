// Package calculator computes bill totals and reporting aggregates.
//
// All arithmetic is done in decimal and converted to float64 only at the
// edges, rounded to two places.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/receipts/internal/models"
)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// Summary aggregates a set of expenses.
type Summary struct {
	Count      int
	Total      float64
	ByCategory []CategoryTotal
}

// BillTotal returns the rounded sum of price × quantity over items.
func BillTotal(items []models.LineItem) float64 {
	return money(models.ItemsTotal(items))
}

// Summarize totals expenses overall and per category.
func Summarize(expenses []*models.Expense) Summary {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return Summary{
		Count:      len(expenses),
		Total:      money(total),
		ByCategory: CategoryBreakdown(expenses),
	}
}

// CategoryBreakdown sums amounts per category, largest first. Ties are
// ordered by name so output is stable.
func CategoryBreakdown(expenses []*models.Expense) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(decimal.NewFromFloat(e.Amount))
	}

	breakdown := make([]CategoryTotal, 0, len(sums))
	for category, amount := range sums {
		breakdown = append(breakdown, CategoryTotal{Category: category, Amount: money(amount)})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// FlattenItems turns every line item of every expense into its own row.
func FlattenItems(expenses []*models.Expense) []models.ItemRow {
	var rows []models.ItemRow
	for _, e := range expenses {
		for _, item := range e.Items {
			rows = append(rows, models.ItemRow{
				ExpenseID: e.ID,
				Date:      e.Date,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Amount:    money(item.Total()),
				Category:  e.Category,
			})
		}
	}
	return rows
}

// LowStock returns the items whose quantity is at or below threshold.
func LowStock(items []*models.InventoryItem, threshold int) []*models.InventoryItem {
	var low []*models.InventoryItem
	for _, item := range items {
		if item.Quantity <= threshold {
			low = append(low, item)
		}
	}
	return low
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
