package models

// InventoryItem is the stock record for one item name.
type InventoryItem struct {
	// Name is the unique key. Bills match inventory by exact name.
	Name string

	// Quantity is the available stock count.
	Quantity int

	// Barcode is optional and not guaranteed unique.
	Barcode string
}
