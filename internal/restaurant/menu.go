package restaurant

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/fastpizza/internal/domain"
)

// MenuItemPayload is a pizza as served by GET /menu
type MenuItemPayload struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	UnitPrice   float64  `json:"unitPrice"`
	ImageURL    string   `json:"imageUrl"`
	Ingredients []string `json:"ingredients"`
	SoldOut     bool     `json:"soldOut"`
}

// GetMenu fetches the full catalog
func (c *Client) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var payload []MenuItemPayload
	if err := c.do(ctx, "get menu", http.MethodGet, "/menu", nil, &payload); err != nil {
		return nil, err
	}

	menu := make([]domain.MenuItem, 0, len(payload))
	for _, p := range payload {
		ingredients := p.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		menu = append(menu, domain.MenuItem{
			ID:          p.ID,
			Name:        p.Name,
			UnitPrice:   decimal.NewFromFloat(p.UnitPrice),
			Ingredients: ingredients,
			SoldOut:     p.SoldOut,
			ImageURL:    p.ImageURL,
		})
	}
	return menu, nil
}
