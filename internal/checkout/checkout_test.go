package checkout

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

func sampleCart() []domain.LineItem {
	return []domain.LineItem{
		{PizzaID: 1, Name: "Margherita", Quantity: 2, UnitPrice: decimal.RequireFromString("12.99")},
		{PizzaID: 2, Name: "Pepperoni", Quantity: 1, UnitPrice: decimal.RequireFromString("14.99")},
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+5491123456789", true},
		{"123-456-7890", true},
		{"+1 555 123 4567", true},
		{"030.1234.5678", true},
		{"abc", false},
		{"", false},
		{"12", false},
		{"555-CALL-NOW", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPhone(tt.phone))
		})
	}
}

func TestPrice(t *testing.T) {
	p := Price(sampleCart(), true)
	assert.Equal(t, "40.97", p.Base.StringFixed(2))
	assert.Equal(t, "8.60", p.Priority.StringFixed(2))
	assert.Equal(t, "49.57", p.Total.StringFixed(2))

	p = Price(sampleCart(), false)
	assert.True(t, p.Priority.IsZero())
	assert.True(t, p.Base.Equal(p.Total))
}

func TestPriorityPrice_Rounding(t *testing.T) {
	assert.Equal(t, "8.60", PriorityPrice(decimal.RequireFromString("40.97")).StringFixed(2))
	assert.Equal(t, "0.21", PriorityPrice(decimal.NewFromInt(1)).StringFixed(2))
	// 2.50 * 0.21 = 0.525 rounds half away from zero
	assert.Equal(t, "0.53", PriorityPrice(decimal.RequireFromString("2.50")).StringFixed(2))
}

func TestAssemble_Success(t *testing.T) {
	customer := domain.Customer{
		Name:     "Ada",
		Address:  "Palermo, Buenos Aires",
		Position: &domain.GeoPosition{Latitude: -34.5, Longitude: -58.4},
	}
	items := sampleCart()

	draft, err := Assemble(items, customer, Form{Phone: "+5491123456789", Priority: true})
	require.NoError(t, err)

	assert.Equal(t, "Ada", draft.CustomerName)
	assert.Equal(t, "Palermo, Buenos Aires", draft.Address)
	assert.Equal(t, "+5491123456789", draft.Phone)
	assert.True(t, draft.PriorityRequested)
	require.NotNil(t, draft.Position)
	assert.Equal(t, -34.5, draft.Position.Latitude)
	assert.Len(t, draft.Cart, 2)

	// The draft holds a snapshot of the cart
	items[0].Quantity = 50
	assert.Equal(t, 2, draft.Cart[0].Quantity)
}

func TestAssemble_TypedAddressDropsPosition(t *testing.T) {
	customer := domain.Customer{
		Name:     "Ada",
		Address:  "Palermo",
		Position: &domain.GeoPosition{Latitude: 1, Longitude: 1},
	}

	draft, err := Assemble(sampleCart(), customer, Form{Phone: "123-456-7890", Address: "Recoleta"})
	require.NoError(t, err)

	assert.Equal(t, "Recoleta", draft.Address)
	assert.Nil(t, draft.Position)
}

func TestAssemble_InvalidPhone(t *testing.T) {
	for _, phone := range []string{"abc", ""} {
		t.Run(phone, func(t *testing.T) {
			draft, err := Assemble(sampleCart(), domain.Customer{Name: "Ada"}, Form{Phone: phone, Address: "Somewhere 1"})
			assert.Nil(t, draft)

			var verr *errors.ErrValidation
			require.True(t, stderrors.As(err, &verr))
			assert.True(t, verr.Has("phone", errors.KindInvalidPhone))
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestAssemble_MissingNameAndAddress(t *testing.T) {
	_, err := Assemble(sampleCart(), domain.Customer{}, Form{Phone: "123-456-7890"})

	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.True(t, verr.Has("customer", errors.KindRequired))
	assert.True(t, verr.Has("address", errors.KindRequired))
	assert.False(t, verr.Has("phone", errors.KindInvalidPhone))
}

func TestAssemble_EmptyCart(t *testing.T) {
	_, err := Assemble(nil, domain.Customer{Name: "Ada"}, Form{Phone: "123-456-7890", Address: "x"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}
