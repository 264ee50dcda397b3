package cron

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/mileusna/crontab"

	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CronService keeps the table catalog warm and reloads the environment,
// so catalog validation rarely pays the database round trip.
type CronService struct {
	catalog      CatalogRefresher
	cacheService cache.CacheService
}

func NewService(catalog CatalogRefresher, cacheService cache.CacheService) *CronService {
	return &CronService{
		catalog:      catalog,
		cacheService: cacheService,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.refreshCatalog(ctx)

	ctab.AddJob("* * * * *", func() {
		cs.refreshCatalog(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

// refreshCatalog refreshes under a distributed lock when the store provides
// one, so only one replica does the work per tick.
func (cs *CronService) refreshCatalog(ctx context.Context) {
	if cs == nil || cs.catalog == nil {
		return
	}

	if mutex := cs.cacheService.NewMutex(cache.CatalogLockKey, redsync.WithExpiry(30*time.Second)); mutex != nil {
		if err := mutex.LockContext(ctx); err != nil {
			// Another replica holds the lock; it will refresh.
			return
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				logger.GetLogger().Warnf("cron service: failed to release catalog lock: %v", err)
			}
		}()
	}

	if err := cs.catalog.Refresh(ctx); err != nil {
		logger.GetLogger().Warnf("cron service: failed to refresh table catalog: %v", err)
	}
}
