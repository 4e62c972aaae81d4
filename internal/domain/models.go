package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a pizza in the restaurant catalog
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Ingredients []string        `json:"ingredients"`
	SoldOut     bool            `json:"sold_out"`
	ImageURL    string          `json:"image_url"`
}

// LineItem is one pizza's quantity and price within a cart or order.
// The total is always derived from UnitPrice and Quantity.
type LineItem struct {
	PizzaID   int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// TotalPrice returns UnitPrice × Quantity
func (i LineItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GeoPosition is a full coordinate pair. Partial positions are not representable.
type GeoPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the position the way the restaurant API stores it
func (p GeoPosition) String() string {
	return fmt.Sprintf("%g,%g", p.Latitude, p.Longitude)
}

// GeocodeResult is a resolved address
type GeocodeResult struct {
	Address  string
	Position GeoPosition
}

// Customer holds the session's identity and geocoded address
type Customer struct {
	Name         string
	Address      string
	Position     *GeoPosition
	LookupStatus LookupStatus
	LookupError  string
}

// OrderDraft is an unsubmitted, locally assembled order. Cart is a snapshot.
type OrderDraft struct {
	CustomerName      string
	Phone             string
	Address           string
	Position          *GeoPosition
	Cart              []LineItem
	PriorityRequested bool
}

// OrderRecord is an order as persisted by the restaurant
type OrderRecord struct {
	ID                    string
	Customer              string
	Phone                 string
	Address               string
	Position              string
	Priority              bool
	Status                OrderStatus
	EstimatedDeliveryTime time.Time
	Cart                  []LineItem
	OrderPrice            decimal.Decimal
	PriorityPrice         decimal.Decimal
}

// OrderEvent is an audit record for an order placed or changed through the storefront
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   string
	SessionID string
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}
