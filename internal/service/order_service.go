package service

import (
	"context"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/jafarshop/fastpizza/internal/checkout"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/internal/orderview"
	"github.com/jafarshop/fastpizza/internal/repository"
)

// OrderClient is the restaurant's order API
type OrderClient interface {
	CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderRecord, error)
	GetOrder(ctx context.Context, id string) (*domain.OrderRecord, error)
	orderview.PriorityUpdater
}

type OrderService struct {
	client       OrderClient
	repos        *repository.Repositories
	phoneHashKey []byte
	logger       *zap.Logger
	now          func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(client OrderClient, repos *repository.Repositories, phoneHashKey string, logger *zap.Logger) *OrderService {
	return &OrderService{
		client:       client,
		repos:        repos,
		phoneHashKey: []byte(phoneHashKey),
		logger:       logger,
		now:          time.Now,
	}
}

// Preview prices the session's cart for the checkout page
func (s *OrderService) Preview(sess *Session, priority bool) checkout.Pricing {
	return checkout.Price(sess.Cart.Items(), priority)
}

// PlaceOrder assembles a draft from the session and submits it. The submitted
// lines leave the cart only once the restaurant accepts the order; validation
// and upstream failures leave the session untouched. Pizzas added while the
// order was in flight stay in the cart.
func (s *OrderService) PlaceOrder(ctx context.Context, sess *Session, form checkout.Form) (*orderview.View, error) {
	draft, err := checkout.Assemble(sess.Cart.Items(), sess.Customer.Snapshot(), form)
	if err != nil {
		return nil, err
	}

	record, err := s.client.CreateOrder(ctx, draft)
	if err != nil {
		s.logger.Error("Failed to submit order", zap.String("session_id", sess.ID), zap.Error(err))
		return nil, err
	}

	sess.Cart.RemoveSubmitted(draft.Cart)

	pricing := checkout.Price(draft.Cart, draft.PriorityRequested)
	if !record.OrderPrice.Equal(pricing.Base) {
		s.logger.Warn("Restaurant price differs from cart total",
			zap.String("order_id", record.ID),
			zap.String("cart_total", pricing.Base.String()),
			zap.String("order_price", record.OrderPrice.String()),
		)
	}

	// Log order creation event
	s.recordEvent(ctx, &domain.OrderEvent{
		OrderID:   record.ID,
		SessionID: sess.ID,
		EventType: domain.EventOrderCreated,
		EventData: map[string]interface{}{
			"priority":       draft.PriorityRequested,
			"items":          len(draft.Cart),
			"order_price":    record.OrderPrice.String(),
			"priority_price": record.PriorityPrice.String(),
			"phone_hash":     s.hashPhone(draft.Phone),
		},
	})

	s.logger.Info("Order placed",
		zap.String("order_id", record.ID),
		zap.String("session_id", sess.ID),
		zap.Bool("priority", record.Priority),
	)

	return orderview.New(*record, s.now()), nil
}

// GetOrder fetches an order for the status page
func (s *OrderService) GetOrder(ctx context.Context, id string) (*orderview.View, error) {
	record, err := s.client.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return orderview.New(*record, s.now()), nil
}

// RequestPriority escalates an order that is not yet priority
func (s *OrderService) RequestPriority(ctx context.Context, sessionID, id string) (*orderview.View, error) {
	view, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := view.RequestPriority(ctx, s.client); err != nil {
		return nil, err
	}
	view.Refresh(s.now())

	s.recordEvent(ctx, &domain.OrderEvent{
		OrderID:   id,
		SessionID: sessionID,
		EventType: domain.EventPriorityEscalated,
		EventData: map[string]interface{}{
			"from": false,
			"to":   true,
		},
	})

	return view, nil
}

// History returns the audit trail for an order
func (s *OrderService) History(ctx context.Context, id string) ([]*domain.OrderEvent, error) {
	return s.repos.OrderEvent.ListByOrderID(ctx, id)
}

func (s *OrderService) recordEvent(ctx context.Context, event *domain.OrderEvent) {
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.String("order_id", event.OrderID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}

func (s *OrderService) hashPhone(phone string) string {
	h, err := blake2b.New256(s.phoneHashKey)
	if err != nil {
		// Only fails for keys over 64 bytes, which config rejects
		return ""
	}
	h.Write([]byte(phone))
	return hex.EncodeToString(h.Sum(nil))
}
