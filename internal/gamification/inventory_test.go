package gamification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus-backend/internal/models"
)

func TestPurchase_InsertThenIncrement(t *testing.T) {
	u := &models.User{ID: uuid.New(), CurrentPoints: 100}
	req := models.PurchaseRequest{ItemID: "theme", Price: 20, Name: "Change app theme"}
	now := at(2026, 3, 12, 10)

	item, created, res, err := Purchase(u, nil, req, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, u.ID, item.UserID)
	assert.Equal(t, "theme", item.ItemID)
	assert.Equal(t, 80, res.NewBalance)
	assert.True(t, res.InventoryUpdated)

	again, created, res, err := Purchase(u, item, req, now)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, item, again)
	assert.Equal(t, 2, again.Quantity)
	assert.Equal(t, 60, res.NewBalance)
	assert.Equal(t, 60, u.CurrentPoints)
}

func TestPurchase_InsufficientFundsMutatesNothing(t *testing.T) {
	u := &models.User{ID: uuid.New(), CurrentPoints: 40}
	existing := &models.InventoryItem{ItemID: "streak", Quantity: 1}

	_, _, _, err := Purchase(u, existing, models.PurchaseRequest{ItemID: "streak", Price: 50}, at(2026, 3, 12, 10))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 40, u.CurrentPoints)
	assert.Equal(t, 1, existing.Quantity)
}

func TestCatalogCheck(t *testing.T) {
	c := DefaultCatalog()

	assert.NoError(t, c.Check(models.PurchaseRequest{ItemID: "rest", Price: 10}))
	assert.ErrorIs(t, c.Check(models.PurchaseRequest{ItemID: "rest", Price: 1}), ErrPriceMismatch)
	assert.ErrorIs(t, c.Check(models.PurchaseRequest{ItemID: "yacht", Price: 10}), ErrUnknownItem)

	items := c.Items()
	require.Len(t, items, 6)
	assert.Equal(t, "guilt", items[0].ID)
}
