package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jafarshop/fastpizza/internal/domain"
)

const menuKey = "fastpizza:menu"

// MenuCache stores the restaurant catalog between fetches
type MenuCache interface {
	// Get returns the cached menu, or ok == false on a miss
	Get(ctx context.Context) (menu []domain.MenuItem, ok bool, err error)
	Set(ctx context.Context, menu []domain.MenuItem, ttl time.Duration) error
}

type redisMenuCache struct {
	rdb *redis.Client
}

// NewRedisMenuCache caches the menu as JSON under a single key
func NewRedisMenuCache(rdb *redis.Client) MenuCache {
	return &redisMenuCache{rdb: rdb}
}

func (c *redisMenuCache) Get(ctx context.Context) ([]domain.MenuItem, bool, error) {
	raw, err := c.rdb.Get(ctx, menuKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read menu cache: %w", err)
	}

	var menu []domain.MenuItem
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, false, fmt.Errorf("failed to decode menu cache: %w", err)
	}
	return menu, true, nil
}

func (c *redisMenuCache) Set(ctx context.Context, menu []domain.MenuItem, ttl time.Duration) error {
	data, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	if err := c.rdb.Set(ctx, menuKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write menu cache: %w", err)
	}
	return nil
}

type memoryMenuCache struct {
	mu      sync.RWMutex
	menu    []domain.MenuItem
	expires time.Time
	now     func() time.Time
}

// NewMemoryMenuCache keeps the menu in process memory
func NewMemoryMenuCache() MenuCache {
	return &memoryMenuCache{now: time.Now}
}

func (c *memoryMenuCache) Get(ctx context.Context) ([]domain.MenuItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.menu == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]domain.MenuItem, len(c.menu))
	copy(out, c.menu)
	return out, true, nil
}

func (c *memoryMenuCache) Set(ctx context.Context, menu []domain.MenuItem, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.menu = make([]domain.MenuItem, len(menu))
	copy(c.menu, menu)
	c.expires = c.now().Add(ttl)
	return nil
}
