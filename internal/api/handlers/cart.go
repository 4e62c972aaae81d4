package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/cart"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/internal/service"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	PizzaID int `json:"pizza_id" binding:"required,min=1"`
}

type CartItemResponse struct {
	PizzaID    int             `json:"pizza_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartResponse represents the cart with its derived totals
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
}

func toCartItemResponses(items []domain.LineItem) []CartItemResponse {
	out := make([]CartItemResponse, len(items))
	for i, item := range items {
		out[i] = CartItemResponse{
			PizzaID:    item.PizzaID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice(),
		}
	}
	return out
}

func cartResponse(sess *service.Session) CartResponse {
	items := sess.Cart.Items()
	return CartResponse{
		Items:         toCartItemResponses(items),
		TotalQuantity: cart.TotalQuantity(items),
		TotalPrice:    cart.TotalPrice(items),
	}
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := carts.AddPizza(c.Request.Context(), sess, req.PizzaID); err != nil {
			respondError(c, logger, err, "failed to add pizza")
			return
		}

		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

// HandleIncreaseCartItem handles POST /v1/cart/items/:pizzaId/increase
func HandleIncreaseCartItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}
		pizzaID, ok := pizzaIDParam(c)
		if !ok {
			return
		}

		if err := sess.Cart.IncreaseQuantity(pizzaID); err != nil {
			respondError(c, logger, err, "failed to update cart")
			return
		}

		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

// HandleDecreaseCartItem handles POST /v1/cart/items/:pizzaId/decrease
func HandleDecreaseCartItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}
		pizzaID, ok := pizzaIDParam(c)
		if !ok {
			return
		}

		if err := sess.Cart.DecreaseQuantity(pizzaID); err != nil {
			respondError(c, logger, err, "failed to update cart")
			return
		}

		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

// HandleDeleteCartItem handles DELETE /v1/cart/items/:pizzaId
func HandleDeleteCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}
		pizzaID, ok := pizzaIDParam(c)
		if !ok {
			return
		}

		sess.Cart.DeleteItem(pizzaID)
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		sess.Cart.Clear()
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}
