package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/checkout"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/internal/orderview"
	"github.com/jafarshop/fastpizza/internal/service"
)

// CreateOrderRequest represents the checkout form
type CreateOrderRequest struct {
	Customer string `json:"customer"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Priority bool   `json:"priority"`
}

// OrderResponse represents an order on the status page
type OrderResponse struct {
	ID                 string             `json:"id"`
	Customer           string             `json:"customer"`
	Address            string             `json:"address"`
	Status             domain.OrderStatus `json:"status"`
	StatusLabel        string             `json:"status_label"`
	Priority           bool               `json:"priority"`
	EstimatedDelivery  string             `json:"estimated_delivery"`
	MinutesRemaining   int                `json:"minutes_remaining"`
	DeliveryMessage    string             `json:"delivery_message"`
	Items              []OrderItemResponse `json:"items"`
	OrderPrice         decimal.Decimal    `json:"order_price"`
	PriorityPrice      decimal.Decimal    `json:"priority_price"`
	TotalPayable       decimal.Decimal    `json:"total_payable"`
	CanRequestPriority bool               `json:"can_request_priority"`
}

// OrderItemResponse is an order line with the pizza's ingredients from the menu
type OrderItemResponse struct {
	CartItemResponse
	Ingredients []string `json:"ingredients"`
}

type OrderEventResponse struct {
	EventType string                 `json:"event_type"`
	EventData map[string]interface{} `json:"event_data"`
	CreatedAt string                 `json:"created_at"`
}

// toOrderItemResponses joins order lines with menu ingredients. Pizzas missing
// from menu get an empty list.
func toOrderItemResponses(items []domain.LineItem, menu []domain.MenuItem) []OrderItemResponse {
	ingredients := make(map[int][]string, len(menu))
	for _, m := range menu {
		ingredients[m.ID] = m.Ingredients
	}

	lines := toCartItemResponses(items)
	out := make([]OrderItemResponse, len(lines))
	for i, line := range lines {
		out[i] = OrderItemResponse{CartItemResponse: line, Ingredients: ingredients[line.PizzaID]}
		if out[i].Ingredients == nil {
			out[i].Ingredients = []string{}
		}
	}
	return out
}

// orderMenu loads the menu for ingredient lookup. The order page still renders
// without ingredients when the menu is unavailable.
func orderMenu(c *gin.Context, menu *service.MenuService, logger *zap.Logger) []domain.MenuItem {
	items, err := menu.GetMenu(c.Request.Context())
	if err != nil {
		logger.Warn("Menu unavailable for order ingredients", zap.Error(err))
		return nil
	}
	return items
}

func toOrderResponse(view *orderview.View, menu []domain.MenuItem) OrderResponse {
	rec := view.Record()
	return OrderResponse{
		ID:                 rec.ID,
		Customer:           rec.Customer,
		Address:            rec.Address,
		Status:             rec.Status,
		StatusLabel:        rec.Status.Label(),
		Priority:           rec.Priority,
		EstimatedDelivery:  rec.EstimatedDeliveryTime.Format(time.RFC3339),
		MinutesRemaining:   view.MinutesRemaining(),
		DeliveryMessage:    view.DeliveryMessage(),
		Items:              toOrderItemResponses(rec.Cart, menu),
		OrderPrice:         rec.OrderPrice,
		PriorityPrice:      rec.PriorityPrice,
		TotalPayable:       view.TotalPayable(),
		CanRequestPriority: view.CanRequestPriority(),
	}
}

// HandleCheckoutPreview handles GET /v1/checkout/preview
func HandleCheckoutPreview(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		priority, err := strconv.ParseBool(c.DefaultQuery("priority", "false"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority flag"})
			return
		}

		c.JSON(http.StatusOK, orders.Preview(sess, priority))
	}
}

// HandleCreateOrder handles POST /v1/orders
func HandleCreateOrder(orders *service.OrderService, menu *service.MenuService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		// Parse request
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		view, err := orders.PlaceOrder(c.Request.Context(), sess, checkout.Form{
			Customer: req.Customer,
			Phone:    req.Phone,
			Address:  req.Address,
			Priority: req.Priority,
		})
		if err != nil {
			respondError(c, logger, err, "failed to create order")
			return
		}

		c.Header("Location", "/v1/orders/"+view.Record().ID)
		c.JSON(http.StatusCreated, toOrderResponse(view, orderMenu(c, menu, logger)))
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(orders *service.OrderService, menu *service.MenuService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := orders.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "failed to get order")
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(view, orderMenu(c, menu, logger)))
	}
}

// HandleRequestPriority handles PATCH /v1/orders/:id/priority
func HandleRequestPriority(orders *service.OrderService, menu *service.MenuService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		view, err := orders.RequestPriority(c.Request.Context(), sess.ID, c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "failed to update order")
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(view, orderMenu(c, menu, logger)))
	}
}

// HandleOrderEvents handles GET /v1/orders/:id/events
func HandleOrderEvents(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := orders.History(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "failed to list order events")
			return
		}

		response := make([]OrderEventResponse, len(events))
		for i, e := range events {
			response[i] = OrderEventResponse{
				EventType: e.EventType,
				EventData: e.EventData,
				CreatedAt: e.CreatedAt.Format(time.RFC3339),
			}
		}
		c.JSON(http.StatusOK, response)
	}
}
