package catalog

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func tableRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"table_name"})
	for _, name := range names {
		rows.AddRow(name)
	}
	return rows
}

func TestListTablesQueriesOnceThenServesFromCache(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewCatalogService(db, cache.NewMemoryCacheService())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT table_name FROM information_schema.tables")).
		WillReturnRows(tableRows("users", "events", "users"))

	tables, err := service.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "events"}, tables)

	// No second database expectation; the cached entry must answer.
	tables, err = service.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "events"}, tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableExists(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewCatalogService(db, cache.NewMemoryCacheService())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT table_name FROM information_schema.tables")).
		WillReturnRows(tableRows("users"))

	exists, err := service.TableExists(context.Background(), "users")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = service.TableExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListTablesWorksWithoutCache(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewCatalogService(db, &cache.NoOpCacheService{})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT table_name FROM information_schema.tables")).
		WillReturnRows(tableRows("users"))

	tables, err := service.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, tables)
}

func TestRefreshRewritesCacheEntry(t *testing.T) {
	db, mock := newTestDB(t)
	memory := cache.NewMemoryCacheService()
	service := NewCatalogService(db, memory)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT table_name FROM information_schema.tables")).
		WillReturnRows(tableRows("users"))

	require.NoError(t, service.Refresh(context.Background()))

	cached, err := memory.Get(context.Background(), cache.CatalogTablesKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["users"]`, cached)
}
