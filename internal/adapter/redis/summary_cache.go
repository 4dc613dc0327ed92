package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "insights:"

type SummaryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSummaryCache(client redis.Cmdable, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) when key is absent.
func (c *SummaryCache) Get(ctx context.Context, key string) (*models.Summary, error) {
	const op = "SummaryCache.Get"

	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	var s models.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		// stale layout, treat as a miss
		_ = c.client.Del(ctx, keyPrefix+key).Err()
		return nil, nil
	}
	return &s, nil
}

func (c *SummaryCache) Set(ctx context.Context, key string, s *models.Summary) error {
	const op = "SummaryCache.Set"

	raw, err := json.Marshal(s)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: marshal: %w", op, err))
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}
