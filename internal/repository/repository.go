package repository

import (
	"context"

	"github.com/jafarshop/fastpizza/internal/domain"
)

// OrderEventRepository stores the audit trail of orders placed through the storefront
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID string) ([]*domain.OrderEvent, error)
}

// Repositories groups every repository the services use
type Repositories struct {
	OrderEvent OrderEventRepository
}
