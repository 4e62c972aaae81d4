package cart

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.AddItem(domain.LineItem{PizzaID: 1, Name: "Margherita", Quantity: 2, UnitPrice: price("12.99")}))
	require.NoError(t, s.AddItem(domain.LineItem{PizzaID: 2, Name: "Pepperoni", Quantity: 1, UnitPrice: price("14.99")}))
	return s
}

func assertLineTotals(t *testing.T, s *Store) {
	t.Helper()
	for _, item := range s.Items() {
		want := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		assert.True(t, want.Equal(item.TotalPrice()), "pizza %d total drifted", item.PizzaID)
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestStore_Totals(t *testing.T) {
	s := sampleStore(t)

	assert.Equal(t, 3, s.TotalQuantity())
	assert.Equal(t, "40.97", s.TotalPrice().StringFixed(2))
	assert.Equal(t, 2, s.QuantityOf(1))
	assert.Equal(t, 0, s.QuantityOf(99))
	assertLineTotals(t, s)
}

func TestStore_IncreaseQuantity(t *testing.T) {
	s := sampleStore(t)

	require.NoError(t, s.IncreaseQuantity(1))

	items := s.Items()
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "38.97", items[0].TotalPrice().StringFixed(2))
	assert.Equal(t, "53.96", s.TotalPrice().StringFixed(2))
	assertLineTotals(t, s)
}

func TestStore_DecreaseQuantity_RemovesAtZero(t *testing.T) {
	s := sampleStore(t)

	require.NoError(t, s.DecreaseQuantity(2))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.QuantityOf(2))
	assertLineTotals(t, s)
}

func TestStore_DecreaseQuantity_KeepsItemAboveZero(t *testing.T) {
	s := sampleStore(t)

	require.NoError(t, s.DecreaseQuantity(1))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.QuantityOf(1))
	assert.Equal(t, "27.98", s.TotalPrice().StringFixed(2))
}

func TestStore_MissingItem(t *testing.T) {
	s := sampleStore(t)
	before := s.Items()

	err := s.IncreaseQuantity(42)
	var nf *errors.ErrNotFound
	require.True(t, stderrors.As(err, &nf))
	assert.Equal(t, "42", nf.ID)

	err = s.DecreaseQuantity(42)
	require.True(t, stderrors.As(err, &nf))

	assert.Equal(t, before, s.Items())
}

func TestStore_DeleteAbsentIsNoop(t *testing.T) {
	s := sampleStore(t)
	before := s.Items()

	s.DeleteItem(42)

	assert.Equal(t, before, s.Items())
}

func TestStore_AddThenDeleteRoundTrip(t *testing.T) {
	s := sampleStore(t)
	before := s.Items()

	require.NoError(t, s.AddItem(domain.LineItem{PizzaID: 7, Name: "Diavola", Quantity: 1, UnitPrice: price("16")}))
	s.DeleteItem(7)

	assert.Equal(t, before, s.Items())
}

func TestStore_AddDuplicateRejected(t *testing.T) {
	s := sampleStore(t)

	err := s.AddItem(domain.LineItem{PizzaID: 1, Name: "Margherita", Quantity: 1, UnitPrice: price("12.99")})

	var dup *errors.ErrDuplicate
	require.True(t, stderrors.As(err, &dup))
	assert.Equal(t, 2, s.QuantityOf(1))
	assert.Equal(t, 2, s.Len())
}

func TestStore_AddInvalidItem(t *testing.T) {
	s := NewStore()

	err := s.AddItem(domain.LineItem{PizzaID: 1, Quantity: 0, UnitPrice: price("1")})
	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.True(t, verr.Has("quantity", errors.KindOutOfRange))

	err = s.AddItem(domain.LineItem{PizzaID: 1, Quantity: 1, UnitPrice: price("-1")})
	require.True(t, stderrors.As(err, &verr))
	assert.True(t, verr.Has("unit_price", errors.KindOutOfRange))

	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.IncreaseQuantity(2))

	s.Clear()

	assert.Equal(t, 0, s.TotalQuantity())
	assert.True(t, s.TotalPrice().IsZero())
	assert.Empty(t, s.Items())
}

func TestStore_ItemsIsSnapshot(t *testing.T) {
	s := sampleStore(t)

	items := s.Items()
	items[0].Quantity = 100

	assert.Equal(t, 2, s.QuantityOf(1))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	items := []domain.LineItem{{PizzaID: 1, Quantity: 1, UnitPrice: price("10")}}

	next, err := Reduce(items, IncreaseQuantity{PizzaID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, next[0].Quantity)
}

func TestStore_RemoveSubmittedKeepsLaterAdditions(t *testing.T) {
	s := sampleStore(t)
	submitted := s.Items()

	// Changes made while the order is in flight
	require.NoError(t, s.IncreaseQuantity(1))
	require.NoError(t, s.AddItem(domain.LineItem{PizzaID: 7, Name: "Diavola", Quantity: 1, UnitPrice: price("16")}))

	s.RemoveSubmitted(submitted)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, s.QuantityOf(1))
	assert.Equal(t, 0, s.QuantityOf(2))
	assert.Equal(t, 1, s.QuantityOf(7))
	assertLineTotals(t, s)
}

func TestStore_RemoveSubmittedEmptiesUnchangedCart(t *testing.T) {
	s := sampleStore(t)

	s.RemoveSubmitted(s.Items())

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.TotalPrice().IsZero())
}

func TestReduce_RemoveSubmittedDropsLinesDecreasedMeanwhile(t *testing.T) {
	submitted := []domain.LineItem{{PizzaID: 1, Quantity: 3, UnitPrice: price("10")}}
	current := []domain.LineItem{{PizzaID: 1, Quantity: 1, UnitPrice: price("10")}}

	next, err := Reduce(current, RemoveSubmitted{Items: submitted})
	require.NoError(t, err)
	assert.Empty(t, next)
	assert.Equal(t, 1, current[0].Quantity)
}
