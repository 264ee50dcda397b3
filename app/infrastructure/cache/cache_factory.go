package cache

import (
	"strings"

	"duckdata.io/duckdb-data-api/config/environment_variables"
)

// NewCacheService creates a cache service based on configuration
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	// Default to Redis if no cache type is specified
	if cacheType == "" {
		cacheType = "redis"
	}

	switch cacheType {
	case "upstash":
		return NewUpstashCacheService()
	case "memory":
		return NewMemoryCacheService()
	case "noop":
		return &NoOpCacheService{}
	case "redis":
		return NewRedisCacheService()
	default:
		// Fallback to Redis for unknown types
		return NewRedisCacheService()
	}
}
