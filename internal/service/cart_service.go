package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/domain"
)

type CartService struct {
	menu   *MenuService
	logger *zap.Logger
}

// NewCartService creates a cart service that prices items from the menu
func NewCartService(menu *MenuService, logger *zap.Logger) *CartService {
	return &CartService{
		menu:   menu,
		logger: logger,
	}
}

// AddPizza puts one of a pizza in the session's cart. A pizza already in the
// cart has its quantity increased instead of being added twice.
func (s *CartService) AddPizza(ctx context.Context, sess *Session, pizzaID int) error {
	if sess.Cart.QuantityOf(pizzaID) > 0 {
		return sess.Cart.IncreaseQuantity(pizzaID)
	}

	item, err := s.menu.FindItem(ctx, pizzaID)
	if err != nil {
		return err
	}
	if item.SoldOut {
		return ErrSoldOut
	}

	return sess.Cart.AddItem(domain.LineItem{
		PizzaID:   item.ID,
		Name:      item.Name,
		Quantity:  1,
		UnitPrice: item.UnitPrice,
	})
}
