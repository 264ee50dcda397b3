package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspileQuotesIdentifiers(t *testing.T) {
	service := NewSQLParseService()

	out, err := service.Transpile("select name from users where id = 1")
	require.NoError(t, err)
	assert.Equal(t, `select "name" from "users" where "id" = 1`, out)
}

func TestPrettifyCanonicalizes(t *testing.T) {
	service := NewSQLParseService()

	out, err := service.Prettify("SELECT   name,age FROM users WHERE id=1")
	require.NoError(t, err)
	assert.Equal(t, "select name, age from users where id = 1", out)
}

func TestParseRejectsInvalidSQL(t *testing.T) {
	service := NewSQLParseService()

	_, err := service.Prettify("not sql at all")
	assert.Error(t, err)

	_, err = service.Prettify("")
	assert.Error(t, err)
}

func TestExtractColumns(t *testing.T) {
	service := NewSQLParseService()

	columns, err := service.ExtractColumns("select name, age from users where city = 'oslo'")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city"}, columns)
}

func TestExtractTablesIncludesJoinsAndSubqueries(t *testing.T) {
	service := NewSQLParseService()

	tables, err := service.ExtractTables(
		"select u.name from users u join orders o on o.user_id = u.id where o.total > (select avg(total) from orders)")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"users", "orders", "orders"}, tables)
}

func TestExtractProjections(t *testing.T) {
	service := NewSQLParseService()

	projections, err := service.ExtractProjections("select id, name as full_name, count(*) as n from users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "full_name", "n"}, projections)

	stars, err := service.ExtractProjections("select * from users")
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, stars)
}
