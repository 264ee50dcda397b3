package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
	"duckdata.io/duckdb-data-api/app/utils/functional"
	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

// catalogTTL bounds how stale the cached table list may get between cron
// refreshes.
const catalogTTL = 5 * time.Minute

// CatalogService knows which tables the configured schema exposes. Every
// dynamic-SQL endpoint validates its table name against this catalog before
// any statement is built.
type CatalogService struct {
	db           *gorm.DB
	cacheService cache.CacheService
}

func NewCatalogService(db *gorm.DB, cacheService cache.CacheService) *CatalogService {
	return &CatalogService{
		db:           db,
		cacheService: cacheService,
	}
}

// SchemaName returns the schema this proxy serves, "main" by default.
func SchemaName() string {
	if schemaName := environment_variables.EnvironmentVariables.SCHEMA_NAME; schemaName != "" {
		return schemaName
	}
	return "main"
}

// ListTables returns the table names of the configured schema, serving from
// cache when possible. A store failure falls back to the database; table
// validation must not die with the cache.
func (s *CatalogService) ListTables(ctx context.Context) ([]string, error) {
	cached, err := s.cacheService.Get(ctx, cache.CatalogTablesKey)
	if err == nil {
		var tables []string
		if err := json.Unmarshal([]byte(cached), &tables); err == nil {
			return tables, nil
		}
		logger.GetLogger().Warnf("catalog: discarding malformed cache entry: %v", err)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.GetLogger().Warnf("catalog: cache lookup failed, querying database: %v", err)
	}

	tables, err := s.queryTables(ctx)
	if err != nil {
		return nil, err
	}
	s.storeTables(ctx, tables)
	return tables, nil
}

// TableExists reports whether name is a table of the configured schema.
func (s *CatalogService) TableExists(ctx context.Context, name string) (bool, error) {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return false, err
	}
	for _, table := range tables {
		if table == name {
			return true, nil
		}
	}
	return false, nil
}

// Refresh re-reads the catalog from the database and rewrites the cache
// entry. The cron warmer calls this so request paths mostly hit warm data.
func (s *CatalogService) Refresh(ctx context.Context) error {
	tables, err := s.queryTables(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh failed: %w", err)
	}
	s.storeTables(ctx, tables)
	return nil
}

func (s *CatalogService) queryTables(ctx context.Context) ([]string, error) {
	var tables []string
	query := s.db.WithContext(ctx)
	if schemaName := environment_variables.EnvironmentVariables.SCHEMA_NAME; schemaName != "" {
		query = query.Raw(
			"SELECT table_name FROM information_schema.tables WHERE table_schema = @schema",
			map[string]any{"schema": schemaName},
		)
	} else {
		query = query.Raw("SELECT table_name FROM information_schema.tables")
	}
	if err := query.Scan(&tables).Error; err != nil {
		return nil, fmt.Errorf("unable to list tables: %w", err)
	}
	return functional.Distinct(tables), nil
}

func (s *CatalogService) storeTables(ctx context.Context, tables []string) {
	payload, err := json.Marshal(tables)
	if err != nil {
		return
	}
	if err := s.cacheService.Set(ctx, cache.CatalogTablesKey, string(payload), catalogTTL); err != nil {
		logger.GetLogger().Warnf("catalog: failed to cache table list: %v", err)
	}
}
