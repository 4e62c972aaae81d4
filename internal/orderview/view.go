package orderview

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

// PriorityUpdater escalates a persisted order to priority
type PriorityUpdater interface {
	UpdateOrderPriority(ctx context.Context, id string) (*domain.OrderRecord, error)
}

// View is an order prepared for the status page
type View struct {
	record           domain.OrderRecord
	minutesRemaining int
}

// New builds a view of rec as seen at now
func New(rec domain.OrderRecord, now time.Time) *View {
	return &View{
		record:           rec,
		minutesRemaining: MinutesRemaining(rec.EstimatedDeliveryTime, now),
	}
}

// MinutesRemaining rounds the time until eta to whole minutes. Past etas are negative.
func MinutesRemaining(eta, now time.Time) int {
	return int(math.Round(eta.Sub(now).Minutes()))
}

func (v *View) Record() domain.OrderRecord {
	return v.record
}

func (v *View) MinutesRemaining() int {
	return v.minutesRemaining
}

// DeliveryMessage is the countdown line shown to the customer
func (v *View) DeliveryMessage() string {
	if v.minutesRemaining >= 0 {
		return fmt.Sprintf("ready in %d minutes", v.minutesRemaining)
	}
	return "already out for delivery"
}

// TotalPayable is what the restaurant charges, taken from the record as is
func (v *View) TotalPayable() decimal.Decimal {
	return v.record.OrderPrice.Add(v.record.PriorityPrice)
}

// CanRequestPriority reports whether the escalation action is offered
func (v *View) CanRequestPriority() bool {
	return !v.record.Priority
}

// RequestPriority escalates the order. It is only offered once; a view that is
// already priority returns ErrInvalidStateTransition without calling upstream.
func (v *View) RequestPriority(ctx context.Context, updater PriorityUpdater) error {
	if !v.CanRequestPriority() {
		return &errors.ErrInvalidStateTransition{Resource: "order priority", From: "priority", To: "priority"}
	}

	updated, err := updater.UpdateOrderPriority(ctx, v.record.ID)
	if err != nil {
		return err
	}

	v.record.Priority = true
	if updated != nil {
		// Prices and status come back recomputed by the restaurant
		v.record.Status = updated.Status
		v.record.OrderPrice = updated.OrderPrice
		v.record.PriorityPrice = updated.PriorityPrice
		if !updated.EstimatedDeliveryTime.IsZero() {
			v.record.EstimatedDeliveryTime = updated.EstimatedDeliveryTime
		}
	}
	return nil
}

// Refresh recomputes the countdown against now
func (v *View) Refresh(now time.Time) {
	v.minutesRemaining = MinutesRemaining(v.record.EstimatedDeliveryTime, now)
}
