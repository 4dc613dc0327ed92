package session

import (
	"context"
	"sync"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	"github.com/google/uuid"
)

const DefaultTTL = 30 * time.Minute

type entry struct {
	mu      sync.Mutex // serializes Update per session
	session models.Session
}

// Store keeps chat sessions in process memory. Sessions idle for longer
// than the TTL are dropped together with their conversation.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry

	ttl     time.Duration
	now     func() time.Time
	service string
	l       logger.Logger
}

func New(ttl time.Duration, service string, l logger.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      ttl,
		now:      time.Now,
		service:  service,
		l:        l,
	}
}

func (s *Store) Create(ctx context.Context) (*models.Session, error) {
	now := s.now()
	sess := models.Session{
		ID:           uuid.New(),
		CreatedAt:    now,
		LastActiveAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessionsGauge.WithLabelValues(s.service).Set(float64(n))
	return &sess, nil
}

// lookup returns a live entry, dropping it first if it has expired.
func (s *Store) lookup(ctx context.Context, id uuid.UUID) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, types.ErrSessionNotFound
	}
	if s.expired(e) {
		s.drop(ctx, id)
		return nil, types.ErrSessionNotFound
	}
	return e, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	e, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	sess := e.session
	return &sess, nil
}

// Update runs fn on a copy of the session while holding the session lock.
// The copy is stored only when fn succeeds.
func (s *Store) Update(ctx context.Context, id uuid.UUID, fn func(sess *models.Session) error) error {
	e, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.session
	if err := fn(&sess); err != nil {
		return err
	}
	sess.LastActiveAt = s.now()
	e.session = sess
	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return types.ErrSessionNotFound
	}
	s.drop(ctx, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict removes every expired session and reports how many were removed.
func (s *Store) Evict(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if s.expired(e) {
			s.drop(ctx, id)
			removed++
		}
	}
	return removed
}

// Run evicts expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(ctx); n > 0 {
				s.l.Debug(ctx, "expired chat sessions evicted", "count", n)
			}
		}
	}
}

// expired must be called with s.mu held. A session that is mid-update is
// never considered idle.
func (s *Store) expired(e *entry) bool {
	if !e.mu.TryLock() {
		return false
	}
	defer e.mu.Unlock()
	return s.now().Sub(e.session.LastActiveAt) > s.ttl
}

// drop must be called with s.mu held.
func (s *Store) drop(ctx context.Context, id uuid.UUID) {
	delete(s.sessions, id)
	metrics.ActiveSessionsGauge.WithLabelValues(s.service).Set(float64(len(s.sessions)))
	s.l.Debug(wrap.WithSessionID(wrap.WithAction(ctx, types.ActionSessionExpired), id.String()), "chat session removed")
}
