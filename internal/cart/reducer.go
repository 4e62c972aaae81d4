package cart

import (
	"strconv"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

// Action is a cart mutation. Reduce applies it to a cart state.
type Action interface {
	apply(items []domain.LineItem) ([]domain.LineItem, error)
}

// AddItem appends a new line item. The pizza must not already be in the cart.
type AddItem struct {
	Item domain.LineItem
}

// DeleteItem removes a pizza from the cart. Absent pizzas are ignored.
type DeleteItem struct {
	PizzaID int
}

// IncreaseQuantity adds one to a pizza's quantity
type IncreaseQuantity struct {
	PizzaID int
}

// DecreaseQuantity removes one from a pizza's quantity, dropping the item at zero
type DecreaseQuantity struct {
	PizzaID int
}

// Clear empties the cart
type Clear struct{}

// RemoveSubmitted takes a submitted order's lines out of the cart. Each line's
// quantity is subtracted and lines that reach zero are dropped, so pizzas
// added after the snapshot was taken stay in the cart.
type RemoveSubmitted struct {
	Items []domain.LineItem
}

// Reduce returns the cart state after applying a. The input slice is never modified.
func Reduce(items []domain.LineItem, a Action) ([]domain.LineItem, error) {
	return a.apply(items)
}

func (a AddItem) apply(items []domain.LineItem) ([]domain.LineItem, error) {
	if indexOf(items, a.Item.PizzaID) >= 0 {
		return items, &errors.ErrDuplicate{Resource: "cart item", ID: strconv.Itoa(a.Item.PizzaID)}
	}
	if a.Item.Quantity < 1 {
		return items, &errors.ErrValidation{Fields: []errors.FieldError{{
			Field:   "quantity",
			Kind:    errors.KindOutOfRange,
			Message: "quantity must be at least 1",
		}}}
	}
	if a.Item.UnitPrice.IsNegative() {
		return items, &errors.ErrValidation{Fields: []errors.FieldError{{
			Field:   "unit_price",
			Kind:    errors.KindOutOfRange,
			Message: "unit price must not be negative",
		}}}
	}

	next := make([]domain.LineItem, len(items), len(items)+1)
	copy(next, items)
	return append(next, a.Item), nil
}

func (a DeleteItem) apply(items []domain.LineItem) ([]domain.LineItem, error) {
	next := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.PizzaID != a.PizzaID {
			next = append(next, item)
		}
	}
	return next, nil
}

func (a IncreaseQuantity) apply(items []domain.LineItem) ([]domain.LineItem, error) {
	i := indexOf(items, a.PizzaID)
	if i < 0 {
		return items, notFound(a.PizzaID)
	}

	next := clone(items)
	next[i].Quantity++
	return next, nil
}

func (a DecreaseQuantity) apply(items []domain.LineItem) ([]domain.LineItem, error) {
	i := indexOf(items, a.PizzaID)
	if i < 0 {
		return items, notFound(a.PizzaID)
	}

	// Quantity never persists as zero
	if items[i].Quantity <= 1 {
		return DeleteItem{PizzaID: a.PizzaID}.apply(items)
	}

	next := clone(items)
	next[i].Quantity--
	return next, nil
}

func (Clear) apply([]domain.LineItem) ([]domain.LineItem, error) {
	return []domain.LineItem{}, nil
}

func (a RemoveSubmitted) apply(items []domain.LineItem) ([]domain.LineItem, error) {
	submitted := make(map[int]int, len(a.Items))
	for _, item := range a.Items {
		submitted[item.PizzaID] += item.Quantity
	}

	next := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		item.Quantity -= submitted[item.PizzaID]
		if item.Quantity > 0 {
			next = append(next, item)
		}
	}
	return next, nil
}

func indexOf(items []domain.LineItem, pizzaID int) int {
	for i, item := range items {
		if item.PizzaID == pizzaID {
			return i
		}
	}
	return -1
}

func clone(items []domain.LineItem) []domain.LineItem {
	next := make([]domain.LineItem, len(items))
	copy(next, items)
	return next
}

func notFound(pizzaID int) error {
	return &errors.ErrNotFound{Resource: "cart item", ID: strconv.Itoa(pizzaID)}
}
