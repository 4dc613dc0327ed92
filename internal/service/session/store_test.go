package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := New(ttl, "test", logger.Nop())
	s.now = c.now
	return s, c
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)

	sess, err := s.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sess.ID)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Zero(t, got.Conversation.Len())

	require.NoError(t, s.Delete(ctx, sess.ID))
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete(ctx, sess.ID), types.ErrSessionNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(time.Minute)
	sess, _ := s.Create(ctx)

	c.advance(30 * time.Second)
	err := s.Update(ctx, sess.ID, func(x *models.Session) error {
		x.Conversation = x.Conversation.Append(types.UserTurn, "hi", c.now())
		return nil
	})
	require.NoError(t, err)

	got, _ := s.Get(ctx, sess.ID)
	assert.Equal(t, 1, got.Conversation.Len())
	assert.Equal(t, c.now(), got.LastActiveAt)

	boom := errors.New("boom")
	err = s.Update(ctx, sess.ID, func(x *models.Session) error {
		x.Conversation = x.Conversation.Append(types.UserTurn, "lost", c.now())
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ = s.Get(ctx, sess.ID)
	assert.Equal(t, 1, got.Conversation.Len(), "failed update is discarded")

	err = s.Update(ctx, uuid.New(), func(*models.Session) error { return nil })
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestUpdateIsSerialized(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(time.Minute)
	sess, _ := s.Create(ctx)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, sess.ID, func(x *models.Session) error {
				x.Conversation = x.Conversation.Append(types.UserTurn, "q", c.now())
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx, sess.ID)
	assert.Equal(t, 50, got.Conversation.Len())
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(time.Minute)

	idle, _ := s.Create(ctx)
	active, _ := s.Create(ctx)

	c.advance(45 * time.Second)
	require.NoError(t, s.Update(ctx, active.ID, func(*models.Session) error { return nil }))

	c.advance(30 * time.Second)
	_, err := s.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, types.ErrSessionNotFound)

	_, err = s.Get(ctx, active.ID)
	assert.NoError(t, err)

	c.advance(2 * time.Minute)
	assert.Equal(t, 1, s.Evict(ctx))
	assert.Zero(t, s.Len())
}
