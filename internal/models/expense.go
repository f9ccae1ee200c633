package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense represents one recorded bill.
type Expense struct {
	// ID is assigned by the store on insert and never changes.
	ID int64

	// Date is the bill date as text, normally YYYY-MM-DD.
	// It is not validated; month filtering compares its first 7 characters.
	Date string

	// Store is the free-text name of the shop.
	Store string

	// Items are the purchased line items in bill order.
	Items []LineItem

	// Amount is the bill total. For bills with items it is derived from
	// the items; see ItemsTotal.
	Amount float64

	// Category is a free-text label such as "Household".
	Category string
}

// LineItem represents a single item on a bill.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// UnmarshalJSON decodes a line item, defaulting a missing quantity to 1.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity *int    `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	li.Name = raw.Name
	li.Price = raw.Price
	li.Quantity = 1
	if raw.Quantity != nil {
		li.Quantity = *raw.Quantity
	}
	return nil
}

// Total returns price × quantity.
func (li LineItem) Total() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ItemsTotal returns the sum of every line total.
func ItemsTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}

// EncodeItems serializes line items to the JSON text stored with an expense.
// A nil slice encodes as an empty array.
func EncodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(data), nil
}

// DecodeItems parses stored item text. Empty text decodes to no items.
func DecodeItems(text string) ([]LineItem, error) {
	if text == "" {
		return nil, nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// ItemRow is one line item flattened out of its bill.
type ItemRow struct {
	ExpenseID int64
	Date      string
	Name      string
	Price     float64
	Quantity  int
	Amount    float64
	Category  string
}
