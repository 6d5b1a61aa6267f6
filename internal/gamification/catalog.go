package gamification

import (
	"sort"

	"focus-backend/internal/models"
)

type CatalogItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Catalog is the server-side price list. When enforced, purchases must name a
// listed item at its listed price.
type Catalog map[string]CatalogItem

func DefaultCatalog() Catalog {
	return NewCatalog(
		CatalogItem{ID: "theme", Name: "Change app theme", Price: 20},
		CatalogItem{ID: "rest", Name: "+5 min break", Price: 10},
		CatalogItem{ID: "streak", Name: "Streak saver", Price: 50},
		CatalogItem{ID: "sound", Name: "Premium ambient sound", Price: 5},
		CatalogItem{ID: "guilt", Name: "10 min guilt-free phone", Price: 20},
		CatalogItem{ID: "reminder", Name: "10 min social media", Price: 10},
	)
}

func NewCatalog(items ...CatalogItem) Catalog {
	c := make(Catalog, len(items))
	for _, it := range items {
		c[it.ID] = it
	}
	return c
}

func (c Catalog) Items() []CatalogItem {
	items := make([]CatalogItem, 0, len(c))
	for _, it := range c {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (c Catalog) Check(req models.PurchaseRequest) error {
	item, ok := c[req.ItemID]
	if !ok {
		return ErrUnknownItem
	}
	if item.Price != req.Price {
		return ErrPriceMismatch
	}
	return nil
}
