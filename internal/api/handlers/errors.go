package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/api/middleware"
	"github.com/jafarshop/fastpizza/internal/checkout"
	"github.com/jafarshop/fastpizza/internal/service"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

// respondError maps domain errors to HTTP responses. msg is what the client
// sees for upstream and internal failures.
func respondError(c *gin.Context, logger *zap.Logger, err error, msg string) {
	var validation *errors.ErrValidation
	var notFound *errors.ErrNotFound
	var duplicate *errors.ErrDuplicate
	var transition *errors.ErrInvalidStateTransition
	var upstream *errors.ErrUpstream

	switch {
	case stderrors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Resource + " not found"})
	case stderrors.As(err, &duplicate), stderrors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.Is(err, checkout.ErrEmptyCart), stderrors.Is(err, service.ErrSoldOut):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.As(err, &upstream):
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// sessionOrAbort fetches the request's session or writes a 401
func sessionOrAbort(c *gin.Context) (*service.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
	}
	return sess, ok
}

func pizzaIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("pizzaId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pizza ID"})
		return 0, false
	}
	return id, true
}
