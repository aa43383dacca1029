// Package cache holds read-through caches for shared, rarely written catalog rows.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/observability"
	"github.com/yungbote/dopebook-backend/internal/platform/config"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

const (
	keyPrefix         = "dopebook:catalog"
	defaultCatalogTTL = 10 * time.Minute
)

// Source is the authoritative catalog reader the cache falls back to.
type Source interface {
	GetCartridge(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error)
	GetBullet(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error)
}

// NewRedisClient returns nil without error when no address is configured.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (goredis.UniversalClient, error) {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// CatalogCache reads bullets and cartridges through redis. With a nil client it is a
// pass-through. Redis failures are logged and never fail a read.
type CatalogCache struct {
	src     Source
	rdb     goredis.UniversalClient
	ttl     time.Duration
	log     *logger.Logger
	metrics *observability.Metrics
}

func NewCatalogCache(src Source, rdb goredis.UniversalClient, ttl time.Duration, baseLog *logger.Logger, metrics *observability.Metrics) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &CatalogCache{
		src:     src,
		rdb:     rdb,
		ttl:     ttl,
		log:     baseLog.With("cache", "CatalogCache"),
		metrics: metrics,
	}
}

func CartridgeKey(id uuid.UUID) string { return keyPrefix + ":cartridge:" + id.String() }
func BulletKey(id uuid.UUID) string    { return keyPrefix + ":bullet:" + id.String() }

func (c *CatalogCache) GetCartridge(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error) {
	return readThrough(c, dbc, "cartridge", CartridgeKey(id), func() (*types.Cartridge, error) {
		return c.src.GetCartridge(dbc, id)
	})
}

func (c *CatalogCache) GetBullet(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error) {
	return readThrough(c, dbc, "bullet", BulletKey(id), func() (*types.Bullet, error) {
		return c.src.GetBullet(dbc, id)
	})
}

// Invalidate drops cached rows, e.g. after a catalog edit.
func (c *CatalogCache) Invalidate(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func readThrough[T any](c *CatalogCache, dbc dbctx.Context, entity, key string, load func() (*T, error)) (*T, error) {
	if c.rdb == nil {
		return load()
	}
	ctx := dbc.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var row T
		if jerr := json.Unmarshal(raw, &row); jerr == nil {
			c.metrics.IncCatalogCache(entity, "hit")
			return &row, nil
		}
		c.log.Warn("catalog cache decode failed", "key", key)
	case errors.Is(err, goredis.Nil):
		c.metrics.IncCatalogCache(entity, "miss")
	default:
		c.metrics.IncCatalogCache(entity, "error")
		c.log.Warn("catalog cache read failed", "key", key, "error", err)
	}

	row, err := load()
	if err != nil || row == nil {
		return row, err
	}
	if payload, jerr := json.Marshal(row); jerr == nil {
		if serr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.log.Debug("catalog cache write failed", "key", key, "error", serr)
		}
	}
	return row, nil
}
