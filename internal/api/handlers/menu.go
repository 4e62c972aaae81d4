package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/cart"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/internal/service"
)

// MenuItemResponse is a pizza with the session's cart quantity
type MenuItemResponse struct {
	domain.MenuItem
	CartQuantity int `json:"cart_quantity"`
}

// HandleGetMenu handles GET /v1/menu
func HandleGetMenu(menu *service.MenuService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		items, err := menu.GetMenu(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "failed to load menu")
			return
		}

		cartItems := sess.Cart.Items()
		response := make([]MenuItemResponse, len(items))
		for i, item := range items {
			response[i] = MenuItemResponse{
				MenuItem:     item,
				CartQuantity: cart.QuantityOf(cartItems, item.ID),
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
