package repository

import (
	"context"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

type InventoryRepo struct {
	db DBTX
}

func NewInventoryRepo(db DBTX) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) GetItem(ctx context.Context, userID uuid.UUID, itemID string) (*models.InventoryItem, error) {
	it := &models.InventoryItem{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, item_id, item_name, quantity, acquired_at
		FROM inventory_items
		WHERE user_id = $1 AND item_id = $2
	`, userID, itemID).Scan(&it.ID, &it.UserID, &it.ItemID, &it.ItemName, &it.Quantity, &it.AcquiredAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *InventoryRepo) InsertItem(ctx context.Context, it *models.InventoryItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_items (id, user_id, item_id, item_name, quantity, acquired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, it.ID, it.UserID, it.ItemID, it.ItemName, it.Quantity, it.AcquiredAt)
	return err
}

func (r *InventoryRepo) UpdateItemQuantity(ctx context.Context, it *models.InventoryItem) error {
	_, err := r.db.Exec(ctx, "UPDATE inventory_items SET quantity = $1 WHERE id = $2", it.Quantity, it.ID)
	return err
}

func (r *InventoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, item_id, item_name, quantity, acquired_at
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY acquired_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.InventoryItem, 0)
	for rows.Next() {
		var it models.InventoryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ItemID, &it.ItemName, &it.Quantity, &it.AcquiredAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
