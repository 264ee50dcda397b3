package sqlexec

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

	"duckdata.io/duckdb-data-api/config/environment_variables"
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

func withBlacklist(t *testing.T, keywords []string) {
	t.Helper()
	previous := environment_variables.EnvironmentVariables.QUERY_BLACKLIST
	environment_variables.EnvironmentVariables.QUERY_BLACKLIST = keywords
	t.Cleanup(func() {
		environment_variables.EnvironmentVariables.QUERY_BLACKLIST = previous
	})
}

func TestIsSelect(t *testing.T) {
	assert.True(t, IsSelect("SELECT 1"))
	assert.True(t, IsSelect("  select * from t"))
	assert.False(t, IsSelect("INSERT INTO t VALUES (1)"))
	assert.False(t, IsSelect("CREATE TABLE t (id INT)"))
}

func TestIsBlacklistedMatchesSubstringsCaseInsensitively(t *testing.T) {
	withBlacklist(t, []string{"drop", "delete"})
	db, _ := newTestDB(t)
	service := NewSQLExecService(db)

	assert.True(t, service.IsBlacklisted("DROP TABLE users"))
	assert.True(t, service.IsBlacklisted("select * from dropped_items"))
	assert.False(t, service.IsBlacklisted("SELECT * FROM users"))
}

func TestExecuteSelectReturnsRows(t *testing.T) {
	withBlacklist(t, nil)
	db, mock := newTestDB(t)
	service := NewSQLExecService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "alice").AddRow(2, "bob"))

	result, err := service.Execute(context.Background(), "SELECT id, name FROM users")
	require.NoError(t, err)
	assert.True(t, result.Select)
	assert.Equal(t, 2, result.TotalRows)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "bob", result.Data[1]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteNonSelectRunsAsExec(t *testing.T) {
	withBlacklist(t, nil)
	db, mock := newTestDB(t)
	service := NewSQLExecService(db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE t (id INT)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := service.Execute(context.Background(), "CREATE TABLE t (id INT)")
	require.NoError(t, err)
	assert.False(t, result.Select)
	assert.Nil(t, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRejectsBlacklistedQuery(t *testing.T) {
	withBlacklist(t, []string{"drop"})
	db, _ := newTestDB(t)
	service := NewSQLExecService(db)

	_, err := service.Execute(context.Background(), "DROP TABLE users")
	assert.ErrorIs(t, err, ErrBlacklisted)
}
