package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/fastpizza/internal/domain"
)

// SetNameRequest represents the name-entry payload. An empty name clears the identity.
type SetNameRequest struct {
	Name string `json:"name"`
}

// AddressLookupRequest carries the device position, or nothing to locate by IP
type AddressLookupRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UserResponse represents the session's customer
type UserResponse struct {
	Name         string              `json:"name"`
	HasIdentity  bool                `json:"has_identity"`
	Address      string              `json:"address"`
	Position     *domain.GeoPosition `json:"position,omitempty"`
	LookupStatus domain.LookupStatus `json:"lookup_status"`
	LookupError  string              `json:"lookup_error,omitempty"`
}

func toUserResponse(c domain.Customer) UserResponse {
	return UserResponse{
		Name:         c.Name,
		HasIdentity:  c.Name != "",
		Address:      c.Address,
		Position:     c.Position,
		LookupStatus: c.LookupStatus,
		LookupError:  c.LookupError,
	}
}

// HandleGetUser handles GET /v1/user
func HandleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toUserResponse(sess.Customer.Snapshot()))
	}
}

// HandleSetName handles PUT /v1/user/name
func HandleSetName() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		var req SetNameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		sess.Customer.SetName(req.Name)
		c.JSON(http.StatusOK, toUserResponse(sess.Customer.Snapshot()))
	}
}

// HandleAddressLookup handles POST /v1/user/address/lookup. With ?async=true the
// lookup continues after the response and the client polls GET /v1/user.
func HandleAddressLookup(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionOrAbort(c)
		if !ok {
			return
		}

		var req AddressLookupRequest
		if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if (req.Latitude == nil) != (req.Longitude == nil) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "latitude and longitude must be given together"})
			return
		}

		var position *domain.GeoPosition
		if req.Latitude != nil {
			position = &domain.GeoPosition{Latitude: *req.Latitude, Longitude: *req.Longitude}
		}

		if c.Query("async") == "true" {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), timeout)
			done := sess.Customer.StartAddressLookup(ctx, position)
			go func() {
				<-done
				cancel()
			}()
			c.JSON(http.StatusAccepted, toUserResponse(sess.Customer.Snapshot()))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		// A failure is logged and recorded on the customer; the client retries when it wants
		customer, _ := sess.Customer.RequestAddressLookup(ctx, position)
		c.JSON(http.StatusOK, toUserResponse(customer))
	}
}
