package cache

const (
	// KeyPrefix namespaces every key this service writes, keeping the
	// store shareable with other tenants.
	KeyPrefix = "duckdb-data-api:"

	CacheVersion = "v1"

	CatalogTablesKey = KeyPrefix + CacheVersion + ":catalog:tables"
	CatalogLockKey   = KeyPrefix + CacheVersion + ":catalog:lock"
)
