package gamification

import (
	"time"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

// Purchase records req against u. existing is the user's current row for
// req.ItemID, or nil. The returned item is either existing with its quantity
// bumped (created=false) or a new row with quantity 1 (created=true). Nothing
// is mutated when u cannot afford the price.
func Purchase(u *models.User, existing *models.InventoryItem, req models.PurchaseRequest, now time.Time) (item *models.InventoryItem, created bool, res models.PurchaseResult, err error) {
	balance, err := Debit(u.CurrentPoints, req.Price)
	if err != nil {
		return nil, false, models.PurchaseResult{}, err
	}

	if existing != nil {
		existing.Quantity++
		item = existing
	} else {
		item = &models.InventoryItem{
			ID:         uuid.New(),
			UserID:     u.ID,
			ItemID:     req.ItemID,
			ItemName:   req.Name,
			Quantity:   1,
			AcquiredAt: now,
		}
		created = true
	}

	u.CurrentPoints = balance
	return item, created, models.PurchaseResult{NewBalance: balance, InventoryUpdated: true}, nil
}
