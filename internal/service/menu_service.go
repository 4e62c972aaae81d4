package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/cache"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

// ErrSoldOut is returned when a sold-out pizza is added to a cart
var ErrSoldOut = stderrors.New("pizza is sold out")

// MenuFetcher reads the restaurant catalog
type MenuFetcher interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)
}

type MenuService struct {
	fetcher MenuFetcher
	cache   cache.MenuCache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewMenuService creates a menu service backed by a cache
func NewMenuService(fetcher MenuFetcher, menuCache cache.MenuCache, ttl time.Duration, logger *zap.Logger) *MenuService {
	return &MenuService{
		fetcher: fetcher,
		cache:   menuCache,
		ttl:     ttl,
		logger:  logger,
	}
}

// GetMenu returns the catalog, from cache when fresh. Cache failures fall
// through to the restaurant API.
func (s *MenuService) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	menu, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("Menu cache read failed", zap.Error(err))
	}
	if ok {
		return menu, nil
	}

	menu, err = s.fetcher.GetMenu(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch menu", zap.Error(err))
		return nil, err
	}

	if err := s.cache.Set(ctx, menu, s.ttl); err != nil {
		s.logger.Warn("Menu cache write failed", zap.Error(err))
	}
	return menu, nil
}

// FindItem returns a single pizza from the catalog
func (s *MenuService) FindItem(ctx context.Context, pizzaID int) (*domain.MenuItem, error) {
	menu, err := s.GetMenu(ctx)
	if err != nil {
		return nil, err
	}
	for i := range menu {
		if menu[i].ID == pizzaID {
			return &menu[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "pizza", ID: strconv.Itoa(pizzaID)}
}
