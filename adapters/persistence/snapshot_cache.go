package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

const snapshotKeyPrefix = "folio:snapshot:"

// snapshotCache fronts a Registry with a Redis read-through cache on the
// public fetch path. Cache faults never fail the caller: reads fall back to
// the inner registry, writes are best effort.
type snapshotCache struct {
	inner  portfolio.Registry
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSnapshotCache(inner portfolio.Registry, rdb *redis.Client, ttl time.Duration, logger logger.Logger) portfolio.Registry {
	return &snapshotCache{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *snapshotCache) Publish(ctx context.Context, id string, snapshot portfolio.Profile) error {
	if err := c.inner.Publish(ctx, id, snapshot); err != nil {
		return err
	}
	c.set(ctx, id, snapshot)
	return nil
}

func (c *snapshotCache) Fetch(ctx context.Context, id string) (*portfolio.Profile, error) {
	data, err := c.rdb.Get(ctx, snapshotKeyPrefix+id).Bytes()
	if err == nil {
		var p portfolio.Profile
		if err := json.Unmarshal(data, &p); err == nil {
			p.Normalize()
			return &p, nil
		}
		c.logger.Warn("Cached snapshot is not decodable, falling through",
			zap.String("portfolio_id", id))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Snapshot cache read failed, falling through",
			zap.String("portfolio_id", id), zap.Error(err))
	}

	p, err := c.inner.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, id, *p)
	return p, nil
}

func (c *snapshotCache) ListPublished(ctx context.Context, limit int) ([]portfolio.PublishedEntry, error) {
	return c.inner.ListPublished(ctx, limit)
}

func (c *snapshotCache) GenerateID() string {
	return c.inner.GenerateID()
}

// Warm loads the snapshot from the inner registry into the cache. The worker
// calls this after a publish event so the first public fetch is a hit.
func (c *snapshotCache) Warm(ctx context.Context, id string) error {
	p, err := c.inner.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}
	c.set(ctx, id, *p)
	return nil
}

func (c *snapshotCache) set(ctx context.Context, id string, snapshot portfolio.Profile) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Warn("Failed to marshal snapshot for cache", zap.String("portfolio_id", id), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, snapshotKeyPrefix+id, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write snapshot cache", zap.String("portfolio_id", id), zap.Error(err))
	}
}

// Warmer is implemented by registries that can pre-load a snapshot cache.
type Warmer interface {
	Warm(ctx context.Context, id string) error
}
