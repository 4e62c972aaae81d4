package orderview

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

var now = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

type stubUpdater struct {
	calls  []string
	record *domain.OrderRecord
	err    error
}

func (u *stubUpdater) UpdateOrderPriority(ctx context.Context, id string) (*domain.OrderRecord, error) {
	u.calls = append(u.calls, id)
	return u.record, u.err
}

func sampleRecord(eta time.Time) domain.OrderRecord {
	return domain.OrderRecord{
		ID:                    "IIDSAT",
		Customer:              "Ada",
		Status:                domain.OrderStatusPreparing,
		EstimatedDeliveryTime: eta,
		OrderPrice:            decimal.RequireFromString("40.97"),
		PriorityPrice:         decimal.Zero,
	}
}

func TestView_FutureDelivery(t *testing.T) {
	v := New(sampleRecord(now.Add(30*time.Minute)), now)

	assert.Equal(t, 30, v.MinutesRemaining())
	assert.Equal(t, "ready in 30 minutes", v.DeliveryMessage())
}

func TestView_PastDelivery(t *testing.T) {
	v := New(sampleRecord(now.Add(-5*time.Minute)), now)

	assert.Equal(t, -5, v.MinutesRemaining())
	assert.Equal(t, "already out for delivery", v.DeliveryMessage())
}

func TestMinutesRemaining_Rounds(t *testing.T) {
	assert.Equal(t, 1, MinutesRemaining(now.Add(89*time.Second), now))
	assert.Equal(t, 2, MinutesRemaining(now.Add(90*time.Second), now))
	assert.Equal(t, 0, MinutesRemaining(now.Add(20*time.Second), now))
}

func TestView_ZeroMinutesIsStillReady(t *testing.T) {
	v := New(sampleRecord(now), now)
	assert.Equal(t, "ready in 0 minutes", v.DeliveryMessage())
}

func TestView_TotalPayable(t *testing.T) {
	rec := sampleRecord(now)
	rec.Priority = true
	rec.PriorityPrice = decimal.RequireFromString("8.60")

	v := New(rec, now)
	assert.Equal(t, "49.57", v.TotalPayable().StringFixed(2))
}

func TestView_RequestPriority(t *testing.T) {
	rec := sampleRecord(now.Add(30 * time.Minute))
	updated := rec
	updated.Priority = true
	updated.PriorityPrice = decimal.RequireFromString("8.60")
	updated.EstimatedDeliveryTime = now.Add(20 * time.Minute)
	u := &stubUpdater{record: &updated}

	v := New(rec, now)
	require.True(t, v.CanRequestPriority())
	require.NoError(t, v.RequestPriority(context.Background(), u))

	assert.Equal(t, []string{"IIDSAT"}, u.calls)
	assert.True(t, v.Record().Priority)
	assert.False(t, v.CanRequestPriority())
	assert.Equal(t, "49.57", v.TotalPayable().StringFixed(2))

	v.Refresh(now)
	assert.Equal(t, 20, v.MinutesRemaining())

	err := v.RequestPriority(context.Background(), u)
	var transition *errors.ErrInvalidStateTransition
	require.True(t, stderrors.As(err, &transition))
	assert.Len(t, u.calls, 1)
}

func TestView_RequestPriorityFailureKeepsState(t *testing.T) {
	u := &stubUpdater{err: stderrors.New("boom")}
	v := New(sampleRecord(now), now)

	err := v.RequestPriority(context.Background(), u)
	require.Error(t, err)

	assert.False(t, v.Record().Priority)
	assert.True(t, v.CanRequestPriority())
}
