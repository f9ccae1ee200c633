package service

import (
	"github.com/mmynk/receipts/internal/billing"
	"github.com/mmynk/receipts/internal/calculator"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/pkg/api"
)

func toAPIExpense(e *models.Expense) *api.Expense {
	if e == nil {
		return nil
	}
	return &api.Expense{
		Id:       e.ID,
		Date:     e.Date,
		Store:    e.Store,
		Items:    toAPIItems(e.Items),
		Amount:   e.Amount,
		Category: e.Category,
	}
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPIItems(items []models.LineItem) []*api.LineItem {
	out := make([]*api.LineItem, len(items))
	for i, item := range items {
		out[i] = &api.LineItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity}
	}
	return out
}

// fromAPIItems converts request items. An unset quantity means one.
func fromAPIItems(items []*api.LineItem) []models.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		out = append(out, models.LineItem{Name: item.Name, Price: item.Price, Quantity: qty})
	}
	return out
}

func fromAPIExpense(e *api.Expense) *models.Expense {
	return &models.Expense{
		ID:       e.Id,
		Date:     e.Date,
		Store:    e.Store,
		Items:    fromAPIItems(e.Items),
		Amount:   e.Amount,
		Category: e.Category,
	}
}

func toAPIInventoryItem(item *models.InventoryItem, threshold int) *api.InventoryItem {
	if item == nil {
		return nil
	}
	return &api.InventoryItem{
		Name:     item.Name,
		Quantity: item.Quantity,
		Barcode:  item.Barcode,
		LowStock: item.Quantity <= threshold,
	}
}

func toAPIItemRows(rows []models.ItemRow) []*api.ItemRow {
	out := make([]*api.ItemRow, len(rows))
	for i, r := range rows {
		out[i] = &api.ItemRow{
			ExpenseId: r.ExpenseID,
			Date:      r.Date,
			Name:      r.Name,
			Price:     r.Price,
			Quantity:  r.Quantity,
			Amount:    r.Amount,
			Category:  r.Category,
		}
	}
	return out
}

func toAPICategories(breakdown []calculator.CategoryTotal) []*api.CategoryTotal {
	out := make([]*api.CategoryTotal, len(breakdown))
	for i, c := range breakdown {
		out[i] = &api.CategoryTotal{Category: c.Category, Amount: c.Amount}
	}
	return out
}

func toAPIProfile(p models.StoreProfile) *api.StoreProfile {
	return &api.StoreProfile{StoreName: p.StoreName, GstNumber: p.GSTNumber}
}

func toAPIDraft(d billing.Draft) *api.ComposeBillRequest {
	return &api.ComposeBillRequest{
		Store:    d.Store,
		Date:     d.Date,
		Category: d.Category,
		Items:    toAPIItems(d.Items),
		Amount:   d.Amount,
	}
}
