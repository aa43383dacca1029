package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/data/aggregates"
	"github.com/yungbote/dopebook-backend/internal/data/cache"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
	"github.com/yungbote/dopebook-backend/internal/observability"
	"github.com/yungbote/dopebook-backend/internal/platform/config"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
	"github.com/yungbote/dopebook-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Sessions services.SessionService

	SessionAggregate domainagg.SessionAggregate
	Catalog          *cache.CatalogCache
}

func wireRedis(ctx context.Context, log *logger.Logger, cfg config.CacheConfig) (goredis.UniversalClient, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rdb, err := cache.NewRedisClient(pingCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}
	if rdb == nil {
		log.Info("Redis not configured; catalog reads go straight to the database")
	}
	return rdb, nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg config.Config, metrics *observability.Metrics, rdb goredis.UniversalClient, r Repos) Services {
	log.Info("Wiring services...")

	catalog := cache.NewCatalogCache(
		aggregates.NewRepoCatalog(r.Cartridges, r.Bullets),
		rdb,
		cfg.Cache.CatalogTTL(),
		log,
		metrics,
	)

	agg := aggregates.NewSessionAggregate(aggregates.SessionAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:       db,
			Log:      log,
			Runner:   aggregates.NewGormTxRunner(db),
			Hooks:    aggregates.NewObservabilityHooks(metrics),
			CASGuard: aggregates.NewCASGuard(db),
		},
		Rifles:             r.Rifles,
		Bullets:            r.Bullets,
		Cartridges:         r.Cartridges,
		ChronographSeries:  r.ChronographSeries,
		ChronographSamples: r.ChronographSamples,
		WeatherSeries:      r.WeatherSeries,
		WeatherSamples:     r.WeatherSamples,
		Ranges:             r.Ranges,
		Sessions:           r.Sessions,
		ShotSamples:        r.ShotSamples,
		Catalog:            catalog,
		WeatherBuffer:      cfg.Assembly.WeatherBuffer(),
		FetchConcurrency:   cfg.Assembly.FetchConcurrency,
	})

	accessTTL := time.Duration(cfg.Auth.AccessTokenTTLSeconds) * time.Second
	return Services{
		Auth:             services.NewAuthService(log, cfg.Auth.JWTSecretKey, accessTTL),
		Sessions:         services.NewSessionService(log, agg, r.Sessions, r.ShotSamples),
		SessionAggregate: agg,
		Catalog:          catalog,
	}
}
