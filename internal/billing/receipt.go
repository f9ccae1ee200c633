package billing

import (
	"github.com/mmynk/receipts/internal/extract"
	"github.com/mmynk/receipts/internal/models"
)

// DraftFromReceipt starts a draft from an extracted receipt.
func DraftFromReceipt(r *extract.Receipt, profile models.StoreProfile) Draft {
	items := make([]models.LineItem, len(r.Items))
	copy(items, r.Items)
	return Draft{
		Store:    r.Store,
		Date:     r.Date,
		Category: r.Category,
		Items:    items,
		Amount:   r.Amount,
		Profile:  profile,
	}
}
