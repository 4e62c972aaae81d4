package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/internal/repository"
)

type orderEventRepository struct {
	mu     sync.RWMutex
	events []*domain.OrderEvent
}

// NewOrderEventRepository keeps audit events in process memory
func NewOrderEventRepository() *orderEventRepository {
	return &orderEventRepository{}
}

// NewRepositories creates memory-backed repositories for when no database is configured
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		OrderEvent: NewOrderEventRepository(),
	}
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	stored := *event
	r.events = append(r.events, &stored)
	return nil
}

func (r *orderEventRepository) ListByOrderID(ctx context.Context, orderID string) ([]*domain.OrderEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.OrderEvent
	for _, e := range r.events {
		if e.OrderID == orderID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}
