// Package models defines the core domain models for the receipt tracker.
//
// # Models
//
//   - Expense: a stored bill (date, store, line items, total, category)
//   - LineItem: one purchased item on a bill
//   - InventoryItem: per-item stock count, keyed by item name
//   - StoreProfile: the shop's own name and GST number printed on bills
//   - ItemRow: one line item flattened out of its bill for item-wise views
//
// # Design Principles
//
//  1. Expenses and inventory are related by item name only. Matching is
//     case-sensitive and exact; there is no foreign key.
//  2. Line items are an explicit typed sequence. They are stored as JSON text
//     but decoded and validated at the ledger boundary.
//  3. Money arithmetic goes through decimal; amounts are persisted as floats.
package models
