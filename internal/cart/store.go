package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/fastpizza/internal/domain"
)

// Store is a session's cart. Every mutation goes through Dispatch, which applies
// one action completely before the next one is observed.
type Store struct {
	mu    sync.Mutex
	items []domain.LineItem
}

// NewStore creates an empty cart
func NewStore() *Store {
	return &Store{items: []domain.LineItem{}}
}

// Dispatch applies an action. On error the cart is left unchanged.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.items, a)
	if err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *Store) AddItem(item domain.LineItem) error {
	return s.Dispatch(AddItem{Item: item})
}

func (s *Store) DeleteItem(pizzaID int) {
	// DeleteItem never fails
	_ = s.Dispatch(DeleteItem{PizzaID: pizzaID})
}

func (s *Store) IncreaseQuantity(pizzaID int) error {
	return s.Dispatch(IncreaseQuantity{PizzaID: pizzaID})
}

func (s *Store) DecreaseQuantity(pizzaID int) error {
	return s.Dispatch(DecreaseQuantity{PizzaID: pizzaID})
}

func (s *Store) Clear() {
	_ = s.Dispatch(Clear{})
}

// RemoveSubmitted drops the lines of a submitted snapshot from the cart
func (s *Store) RemoveSubmitted(items []domain.LineItem) {
	_ = s.Dispatch(RemoveSubmitted{Items: items})
}

// Items returns a snapshot of the cart
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) TotalQuantity() int {
	return TotalQuantity(s.Items())
}

func (s *Store) TotalPrice() decimal.Decimal {
	return TotalPrice(s.Items())
}

func (s *Store) QuantityOf(pizzaID int) int {
	return QuantityOf(s.Items(), pizzaID)
}

// TotalQuantity sums the quantities of all items
func TotalQuantity(items []domain.LineItem) int {
	sum := 0
	for _, item := range items {
		sum += item.Quantity
	}
	return sum
}

// TotalPrice sums the line totals of all items
func TotalPrice(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.TotalPrice())
	}
	return sum
}

// QuantityOf returns the quantity of a pizza, or 0 if it is not in the cart
func QuantityOf(items []domain.LineItem, pizzaID int) int {
	if i := indexOf(items, pizzaID); i >= 0 {
		return items[i].Quantity
	}
	return 0
}
