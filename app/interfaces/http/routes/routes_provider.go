package routes

import (
	"github.com/google/wire"

	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/admin"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/assist"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/execute"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/mcp"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/metadata"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/sqltools"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/system"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/tables"
)

var RouteProvider = wire.NewSet(
	system.NewSystemRoute,
	metadata.NewMetadataRoute,
	tables.NewTablesRoute,
	execute.NewExecuteRoute,
	sqltools.NewSQLToolsRoute,
	assist.NewAssistRoute,
	admin.NewCacheRoute,
	mcp.NewMCPAPI,
)
