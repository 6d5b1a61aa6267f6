package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is unique per (UserID, ItemID); repeat purchases bump Quantity.
type InventoryItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ItemID     string    `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

type PurchaseRequest struct {
	ItemID string `json:"item_id"`
	Price  int    `json:"price"`
	Name   string `json:"name"`
}

type PurchaseResult struct {
	NewBalance       int  `json:"new_balance"`
	InventoryUpdated bool `json:"inventory_updated"`
}

type SpinResult struct {
	PrizeLabel string `json:"prize_label"`
	PrizeValue int    `json:"prize_value"`
	NewBalance int    `json:"new_balance"`
}
