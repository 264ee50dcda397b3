//go:build wireinject

package main

import (
	"github.com/google/wire"

	"duckdata.io/duckdb-data-api/app/domain"
	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
	"duckdata.io/duckdb-data-api/app/infrastructure/database"
	"duckdata.io/duckdb-data-api/app/interfaces/http"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		cache.NewCacheService,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
