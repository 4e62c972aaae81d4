package checkout

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/fastpizza/internal/cart"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

// PriorityRate is the fixed surcharge for expedited orders
var PriorityRate = decimal.RequireFromString("0.21")

// ErrEmptyCart is returned when a draft is assembled from an empty cart
var ErrEmptyCart = stderrors.New("cart is empty")

// Optional +, country code, optional area code, then digit groups split by space, dash or dot
var phonePattern = regexp.MustCompile(`^\+?\d{1,4}?[-.\s]?\(?\d{1,3}?\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)

// Form is the checkout form as the customer submitted it
type Form struct {
	Customer string
	Phone    string
	Address  string
	Priority bool
}

// Pricing is the price breakdown shown at checkout
type Pricing struct {
	Base     decimal.Decimal `json:"base_price"`
	Priority decimal.Decimal `json:"priority_price"`
	Total    decimal.Decimal `json:"total_price"`
}

// ValidPhone reports whether s looks like an international phone number
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// PriorityPrice returns the rounded surcharge for a base price
func PriorityPrice(base decimal.Decimal) decimal.Decimal {
	return base.Mul(PriorityRate).Round(2)
}

// Price computes the checkout pricing for a cart
func Price(items []domain.LineItem, priority bool) Pricing {
	base := cart.TotalPrice(items)
	surcharge := decimal.Zero
	if priority {
		surcharge = PriorityPrice(base)
	}
	return Pricing{
		Base:     base,
		Priority: surcharge,
		Total:    base.Add(surcharge),
	}
}

// Assemble builds an order draft from a cart snapshot, the session customer and
// the submitted form. It has no side effects. Blank name and address fields
// fall back to the customer's stored values.
func Assemble(items []domain.LineItem, customer domain.Customer, form Form) (*domain.OrderDraft, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	name := strings.TrimSpace(form.Customer)
	if name == "" {
		name = customer.Name
	}
	address := strings.TrimSpace(form.Address)
	if address == "" {
		address = customer.Address
	}
	phone := strings.TrimSpace(form.Phone)

	var fields []errors.FieldError
	if name == "" {
		fields = append(fields, errors.FieldError{Field: "customer", Kind: errors.KindRequired, Message: "Please enter your name"})
	}
	if !ValidPhone(phone) {
		fields = append(fields, errors.FieldError{Field: "phone", Kind: errors.KindInvalidPhone, Message: "Please enter a valid phone number"})
	}
	if address == "" {
		fields = append(fields, errors.FieldError{Field: "address", Kind: errors.KindRequired, Message: "Please enter your address"})
	}
	if len(fields) > 0 {
		return nil, &errors.ErrValidation{Fields: fields}
	}

	snapshot := make([]domain.LineItem, len(items))
	copy(snapshot, items)

	draft := &domain.OrderDraft{
		CustomerName:      name,
		Phone:             phone,
		Address:           address,
		Cart:              snapshot,
		PriorityRequested: form.Priority,
	}
	// The stored position only belongs to the stored address
	if customer.Position != nil && address == customer.Address {
		p := *customer.Position
		draft.Position = &p
	}
	return draft, nil
}
