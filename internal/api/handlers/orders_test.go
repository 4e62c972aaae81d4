package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/fastpizza/internal/domain"
)

func orderLines() []domain.LineItem {
	return []domain.LineItem{
		{PizzaID: 1, Name: "Margherita", Quantity: 2, UnitPrice: decimal.RequireFromString("12.99")},
		{PizzaID: 2, Name: "Pepperoni", Quantity: 1, UnitPrice: decimal.RequireFromString("14.99")},
	}
}

func TestToOrderItemResponses_JoinsIngredients(t *testing.T) {
	menu := []domain.MenuItem{
		{ID: 1, Name: "Margherita", Ingredients: []string{"tomato", "mozzarella", "basil"}},
	}

	items := toOrderItemResponses(orderLines(), menu)

	require.Len(t, items, 2)
	assert.Equal(t, []string{"tomato", "mozzarella", "basil"}, items[0].Ingredients)
	assert.Equal(t, "25.98", items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, []string{}, items[1].Ingredients)
}

func TestToOrderItemResponses_WithoutMenu(t *testing.T) {
	items := toOrderItemResponses(orderLines(), nil)

	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotNil(t, item.Ingredients)
		assert.Empty(t, item.Ingredients)
	}
}
