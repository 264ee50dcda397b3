package main

import (
	"context"

	"github.com/mileusna/crontab"

	"duckdata.io/duckdb-data-api/app/domain/cron"
	"duckdata.io/duckdb-data-api/app/interfaces/http"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

type Application struct {
	HttpServer  *http.HttpServer
	CronService *cron.CronService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	ctab := crontab.New()
	application.CronService.Start(context.Background(), ctab)
	application.Start()
}
