package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/fastpizza/internal/api/handlers"
	"github.com/jafarshop/fastpizza/internal/api/middleware"
	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/internal/service"
)

// Services groups what the handlers depend on
type Services struct {
	Sessions *service.SessionRegistry
	Menu     *service.MenuService
	Cart     *service.CartService
	Orders   *service.OrderService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *Services, metrics *Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(metrics.Middleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	lookupTimeout := cfg.Geocode.Timeout
	if lookupTimeout <= 0 {
		lookupTimeout = 10 * time.Second
	}

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.SessionMiddleware(services.Sessions, cfg.Environment == "production"))
	{
		v1.GET("/menu", handlers.HandleGetMenu(services.Menu, logger))

		cartRoutes := v1.Group("/cart")
		{
			cartRoutes.GET("", handlers.HandleGetCart())
			cartRoutes.DELETE("", handlers.HandleClearCart())
			cartRoutes.POST("/items", handlers.HandleAddCartItem(services.Cart, logger))
			cartRoutes.DELETE("/items/:pizzaId", handlers.HandleDeleteCartItem())
			cartRoutes.POST("/items/:pizzaId/increase", handlers.HandleIncreaseCartItem(logger))
			cartRoutes.POST("/items/:pizzaId/decrease", handlers.HandleDecreaseCartItem(logger))
		}

		userRoutes := v1.Group("/user")
		{
			userRoutes.GET("", handlers.HandleGetUser())
			userRoutes.PUT("/name", handlers.HandleSetName())
			userRoutes.POST("/address/lookup",
				middleware.SessionRateLimit(rate.Limit(cfg.Session.LookupRate), cfg.Session.LookupBurst, logger),
				handlers.HandleAddressLookup(lookupTimeout),
			)
		}

		v1.GET("/checkout/preview", handlers.HandleCheckoutPreview(services.Orders))

		orderRoutes := v1.Group("/orders")
		{
			orderRoutes.POST("", handlers.HandleCreateOrder(services.Orders, services.Menu, logger))
			orderRoutes.GET("/:id", handlers.HandleGetOrder(services.Orders, services.Menu, logger))
			orderRoutes.PATCH("/:id/priority", handlers.HandleRequestPriority(services.Orders, services.Menu, logger))
			orderRoutes.GET("/:id/events", handlers.HandleOrderEvents(services.Orders, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
