package entity

import (
	"context"
	"net/url"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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

func TestParseFilters(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		expected []Filter
	}{
		{
			name:     "bare column defaults to equality",
			query:    "name=alice",
			expected: []Filter{{Column: "name", Operator: "=", Value: "alice"}},
		},
		{
			name:  "operator suffixes",
			query: "age.gte=21&age.lt=65&status.neq=inactive&name.like=al%25",
			expected: []Filter{
				{Column: "age", Operator: ">=", Value: "21"},
				{Column: "age", Operator: "<", Value: "65"},
				{Column: "name", Operator: "ILIKE", Value: "al%"},
				{Column: "status", Operator: "<>", Value: "inactive"},
			},
		},
		{
			name:     "reserved params are not filters",
			query:    "limit=10&offset=5&order=name&select=id&city.eq=oslo",
			expected: []Filter{{Column: "city", Operator: "=", Value: "oslo"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			filters, err := ParseFilters(params)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, filters)
		})
	}
}

func TestParseFiltersRejectsUnsafeColumn(t *testing.T) {
	params := url.Values{"name;drop table users.eq": []string{"x"}}
	_, err := ParseFilters(params)
	assert.Error(t, err)
}

func TestListPaginates(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM main.users WHERE name = $1 LIMIT $2 OFFSET $3")).
		WithArgs("alice", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "alice"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM main.users WHERE name = $1")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))

	page, err := service.List(context.Background(), "users", ListQuery{
		Filters: []Filter{{Column: "name", Operator: "=", Value: "alice"}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(250), page.TotalRows)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, int64(1), page.CurrentPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "alice", page.Data[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRangeFiltersOnOneColumn(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	params, err := url.ParseQuery("age.gte=21&age.lte=65")
	require.NoError(t, err)
	filters, err := ParseFilters(params)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM main.users WHERE age >= $1 AND age <= $2 LIMIT $3 OFFSET $4")).
		WithArgs("21", "65", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "age"}).AddRow(1, 30))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM main.users WHERE age >= $1 AND age <= $2")).
		WithArgs("21", "65").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	page, err := service.List(context.Background(), "users", ListQuery{Filters: filters})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRejectsUnsafeOrder(t *testing.T) {
	db, _ := newTestDB(t)
	service := NewEntityService(db)

	_, err := service.List(context.Background(), "users", ListQuery{Order: "name; DROP TABLE users"})
	assert.Error(t, err)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM main.users WHERE id = $1")).
		WithArgs("9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.GetByID(context.Background(), "users", "9")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsInsertedRow(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO main.users (age, name) VALUES ($1, $2) RETURNING *")).
		WithArgs(30, "alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "age", "name"}).AddRow(1, 30, "alice"))

	row, err := service.Create(context.Background(), "users", map[string]any{"name": "alice", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, "alice", row["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsUnsafeColumn(t *testing.T) {
	db, _ := newTestDB(t)
	service := NewEntityService(db)

	_, err := service.Create(context.Background(), "users", map[string]any{"name); DROP TABLE users; --": "x"})
	assert.Error(t, err)
}

func TestUpdateChecksExistenceFirst(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM main.users WHERE id = $1)")).
		WithArgs("9").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := service.Update(context.Background(), "users", "9", map[string]any{"name": "bob"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReturnsUpdatedRow(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM main.users WHERE id = $1)")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE main.users SET name = $1 WHERE id = $2 RETURNING *")).
		WithArgs("bob", "1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "bob"))

	row, err := service.Update(context.Background(), "users", "1", map[string]any{"name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", row["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesRow(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM main.users WHERE id = $1)")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM main.users WHERE id = $1")).
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, service.Delete(context.Background(), "users", "1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRow(t *testing.T) {
	db, mock := newTestDB(t)
	service := NewEntityService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM main.users WHERE id = $1)")).
		WithArgs("9").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	assert.ErrorIs(t, service.Delete(context.Background(), "users", "9"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
