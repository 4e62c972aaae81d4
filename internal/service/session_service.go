package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/fastpizza/internal/cart"
	"github.com/jafarshop/fastpizza/internal/customer"
)

// Session is one browser session's state
type Session struct {
	ID       string
	Cart     *cart.Store
	Customer *customer.Store

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Limiter returns the session's rate limiter for key, creating it on first use.
// Limiters live as long as the session and are released when it is swept.
func (s *Session) Limiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limiters == nil {
		s.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(limit, burst)
		s.limiters[key] = limiter
	}
	return limiter
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// SessionRegistry owns every live session. State lives only in memory for the
// lifetime of the browser session.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	geocoder customer.Geocoder
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry(geocoder customer.Geocoder, logger *zap.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		geocoder: geocoder,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOrCreate returns the session with id, creating an empty one if needed
func (r *SessionRegistry) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		entry = &sessionEntry{session: &Session{
			ID:       id,
			Cart:     cart.NewStore(),
			Customer: customer.NewStore(r.geocoder, r.logger),
		}}
		r.sessions[id] = entry
		r.logger.Debug("Session created", zap.String("session_id", id))
	}
	entry.lastSeen = r.now()
	return entry.session
}

// Get returns an existing session
func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many were dropped
func (r *SessionRegistry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	dropped := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper sweeps idle sessions every interval until ctx is done
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				r.logger.Info("Swept idle sessions", zap.Int("count", n))
			}
		}
	}
}
