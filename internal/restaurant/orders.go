package restaurant

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

// CartItemPayload is a line item on the wire. totalPrice is always derived.
type CartItemPayload struct {
	PizzaID    int     `json:"pizzaId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// CreateOrderPayload is the body of POST /order
type CreateOrderPayload struct {
	Customer string            `json:"customer"`
	Phone    string            `json:"phone"`
	Address  string            `json:"address"`
	Position string            `json:"position"`
	Priority bool              `json:"priority"`
	Cart     []CartItemPayload `json:"cart"`
}

// OrderPayload is an order as returned by the restaurant
type OrderPayload struct {
	ID                string            `json:"id"`
	Customer          string            `json:"customer"`
	Phone             string            `json:"phone"`
	Address           string            `json:"address"`
	Position          string            `json:"position"`
	Priority          bool              `json:"priority"`
	Status            string            `json:"status"`
	EstimatedDelivery time.Time         `json:"estimatedDelivery"`
	Cart              []CartItemPayload `json:"cart"`
	OrderPrice        float64           `json:"orderPrice"`
	PriorityPrice     float64           `json:"priorityPrice"`
}

type updateOrderPayload struct {
	Priority bool `json:"priority"`
}

// CreateOrder submits a draft and returns the persisted order
func (c *Client) CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderRecord, error) {
	body := CreateOrderPayload{
		Customer: draft.CustomerName,
		Phone:    draft.Phone,
		Address:  draft.Address,
		Priority: draft.PriorityRequested,
		Cart:     toCartPayload(draft.Cart),
	}
	if draft.Position != nil {
		body.Position = draft.Position.String()
	}

	var payload OrderPayload
	if err := c.do(ctx, "create order", http.MethodPost, "/order", body, &payload); err != nil {
		c.logger.Error("Failed to create order", zap.Error(err))
		return nil, err
	}
	return payload.toRecord(), nil
}

// GetOrder fetches an order by id
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.OrderRecord, error) {
	var payload OrderPayload
	if err := c.do(ctx, "get order", http.MethodGet, "/order/"+url.PathEscape(id), nil, &payload); err != nil {
		if isNotFound(err) {
			return nil, &errors.ErrNotFound{Resource: "order", ID: id}
		}
		return nil, err
	}
	return payload.toRecord(), nil
}

// UpdateOrderPriority escalates an order to priority. This is the only update
// the storefront sends for a persisted order.
func (c *Client) UpdateOrderPriority(ctx context.Context, id string) (*domain.OrderRecord, error) {
	var payload OrderPayload
	err := c.do(ctx, "update order", http.MethodPatch, "/order/"+url.PathEscape(id), updateOrderPayload{Priority: true}, &payload)
	if err != nil {
		if isNotFound(err) {
			return nil, &errors.ErrNotFound{Resource: "order", ID: id}
		}
		return nil, err
	}
	// Some deployments answer PATCH with an empty body
	if payload.ID == "" {
		return nil, nil
	}
	return payload.toRecord(), nil
}

func toCartPayload(items []domain.LineItem) []CartItemPayload {
	out := make([]CartItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, CartItemPayload{
			PizzaID:    item.PizzaID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.InexactFloat64(),
			TotalPrice: item.TotalPrice().InexactFloat64(),
		})
	}
	return out
}

func (p OrderPayload) toRecord() *domain.OrderRecord {
	items := make([]domain.LineItem, 0, len(p.Cart))
	for _, item := range p.Cart {
		items = append(items, domain.LineItem{
			PizzaID:   item.PizzaID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: decimal.NewFromFloat(item.UnitPrice),
		})
	}
	return &domain.OrderRecord{
		ID:                    p.ID,
		Customer:              p.Customer,
		Phone:                 p.Phone,
		Address:               p.Address,
		Position:              p.Position,
		Priority:              p.Priority,
		Status:                domain.OrderStatus(p.Status),
		EstimatedDeliveryTime: p.EstimatedDelivery,
		Cart:                  items,
		OrderPrice:            decimal.NewFromFloat(p.OrderPrice),
		PriorityPrice:         decimal.NewFromFloat(p.PriorityPrice),
	}
}
