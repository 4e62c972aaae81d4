package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/fastpizza/internal/domain"
)

func TestOrderEventRepository_CreateAndList(t *testing.T) {
	repo := NewOrderEventRepository()
	ctx := context.Background()

	created := &domain.OrderEvent{OrderID: "A1", EventType: domain.EventOrderCreated}
	require.NoError(t, repo.Create(ctx, created))
	require.NoError(t, repo.Create(ctx, &domain.OrderEvent{OrderID: "B2", EventType: domain.EventOrderCreated}))
	require.NoError(t, repo.Create(ctx, &domain.OrderEvent{OrderID: "A1", EventType: domain.EventPriorityEscalated}))

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	events, err := repo.ListByOrderID(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventOrderCreated, events[0].EventType)
	assert.Equal(t, domain.EventPriorityEscalated, events[1].EventType)

	none, err := repo.ListByOrderID(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
