package customer

import (
	"context"
	stderrors "errors"
	"sync"

	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/domain"
)

// LookupFailedMessage is what the customer sees when an address lookup fails.
// The underlying error is only logged.
const LookupFailedMessage = "There was a problem getting your address. Make sure to fill this field!"

// ErrNoResult is reported when a geocoder returns neither a result nor an error
var ErrNoResult = stderrors.New("geocoder returned no result")

// Geocoder resolves a position into an address. A nil position asks the
// geocoder to locate the caller by other means.
type Geocoder interface {
	Geocode(ctx context.Context, position *domain.GeoPosition) (*domain.GeocodeResult, error)
}

// Store holds the session's customer identity and address.
//
// Address lookups never hold the lock while the geocoder runs. Each lookup
// is stamped with a sequence number and only the latest issued lookup may
// write its result back; earlier ones are discarded when they complete.
type Store struct {
	mu       sync.Mutex
	customer domain.Customer
	seq      uint64
	geocoder Geocoder
	logger   *zap.Logger
}

// NewStore creates a customer with no identity yet
func NewStore(geocoder Geocoder, logger *zap.Logger) *Store {
	return &Store{
		customer: domain.Customer{LookupStatus: domain.LookupStatusIdle},
		geocoder: geocoder,
		logger:   logger,
	}
}

// SetName replaces the customer name. Empty means no identity.
func (s *Store) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer.Name = name
}

// Snapshot returns a copy of the customer
func (s *Store) Snapshot() domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Customer {
	c := s.customer
	if c.Position != nil {
		p := *c.Position
		c.Position = &p
	}
	return c
}

// HasIdentity reports whether the customer has entered a name
func (s *Store) HasIdentity() bool {
	return s.Snapshot().Name != ""
}

// BeginLookup marks the store as loading and returns the lookup's sequence number
func (s *Store) BeginLookup() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.customer.LookupStatus = domain.LookupStatusLoading
	s.customer.LookupError = ""
	return s.seq
}

// CompleteLookup applies a lookup result if seq is still the latest lookup.
// It reports whether the result was applied. A nil result without an error
// counts as a failed lookup.
func (s *Store) CompleteLookup(seq uint64, result *domain.GeocodeResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}

	if err == nil && result == nil {
		err = ErrNoResult
	}
	if err != nil {
		s.logger.Warn("Address lookup failed", zap.Uint64("seq", seq), zap.Error(err))
		s.customer.LookupStatus = domain.LookupStatusError
		s.customer.LookupError = LookupFailedMessage
		return true
	}

	pos := result.Position
	s.customer.Address = result.Address
	s.customer.Position = &pos
	s.customer.LookupStatus = domain.LookupStatusIdle
	s.customer.LookupError = ""
	return true
}

// StartAddressLookup marks the store loading and resolves the lookup in the
// background. The channel receives the customer once the lookup completes.
func (s *Store) StartAddressLookup(ctx context.Context, position *domain.GeoPosition) <-chan domain.Customer {
	seq := s.BeginLookup()
	done := make(chan domain.Customer, 1)

	go func() {
		result, err := s.geocoder.Geocode(ctx, position)
		s.CompleteLookup(seq, result, err)
		done <- s.Snapshot()
	}()

	return done
}

// RequestAddressLookup runs a full lookup and returns the customer as it stands
// afterwards. A superseded lookup returns the newer state untouched, and its
// geocoding error, if any, is dropped.
func (s *Store) RequestAddressLookup(ctx context.Context, position *domain.GeoPosition) (domain.Customer, error) {
	seq := s.BeginLookup()

	result, err := s.geocoder.Geocode(ctx, position)
	if err == nil && result == nil {
		err = ErrNoResult
	}
	applied := s.CompleteLookup(seq, result, err)

	if applied && err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}
