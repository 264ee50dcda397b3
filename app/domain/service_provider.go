package domain

import (
	"github.com/google/wire"

	"duckdata.io/duckdb-data-api/app/domain/assist"
	"duckdata.io/duckdb-data-api/app/domain/catalog"
	"duckdata.io/duckdb-data-api/app/domain/cron"
	"duckdata.io/duckdb-data-api/app/domain/entity"
	"duckdata.io/duckdb-data-api/app/domain/sqlexec"
	"duckdata.io/duckdb-data-api/app/domain/sqlparse"
)

var ServiceProvider = wire.NewSet(
	catalog.NewCatalogService,
	entity.NewEntityService,
	sqlexec.NewSQLExecService,
	sqlparse.NewSQLParseService,
	assist.NewAssistService,
	cron.NewService,
	wire.Bind(new(cron.CatalogRefresher), new(*catalog.CatalogService)),
)
