package domain

// OrderStatus is the server-authoritative status of a placed order
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on the way"
	OrderStatusDelivered OrderStatus = "delivered"
)

// IsValid checks if the order status is one the restaurant reports
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPreparing,
		OrderStatusOnTheWay,
		OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Label returns the customer-facing name of the status
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusOnTheWay:
		return "On the way"
	case OrderStatusDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// LookupStatus is the state of the customer's address lookup
type LookupStatus string

const (
	LookupStatusIdle    LookupStatus = "idle"
	LookupStatusLoading LookupStatus = "loading"
	LookupStatusError   LookupStatus = "error"
)

// Order audit event types
const (
	EventOrderCreated      = "order_created"
	EventPriorityEscalated = "priority_escalated"
)
