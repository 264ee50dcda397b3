package database

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

// openDialector builds a gorm dialector for the configured driver. DuckDB
// connections are opened through database/sql and wrapped with the postgres
// dialector; the service only issues raw SQL, so no dialect codegen runs.
func openDialector(dsn string) (gorm.Dialector, error) {
	driver := environment_variables.EnvironmentVariables.DB_DRIVER
	if driver == "" {
		driver = "duckdb"
	}
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "duckdb":
		conn, err := sql.Open("duckdb", dsn)
		if err != nil {
			return nil, fmt.Errorf("unable to open duckdb database: %w", err)
		}
		return postgres.New(postgres.Config{Conn: conn}), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}

func NewDB() (*gorm.DB, error) {
	dsn := environment_variables.EnvironmentVariables.DATABASE_URL
	if dsn == "" {
		dsn = "tickit.duckdb"
	}

	dialector, err := openDialector(dsn)
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "c41a2db7-90fd-4dd9-b4f7-5229cd1ab88e").
			Errorf("unable to open database: %v", err)
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "5c16fb53-d98c-4fc6-8bb4-9abd3c0b9e88").
			Errorf("unable to connect to database: %v", err)
		return nil, err
	}

	readURLs := environment_variables.EnvironmentVariables.DATABASE_READ_URLS
	if len(readURLs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(readURLs))
		for _, readURL := range readURLs {
			replica, err := openDialector(readURL)
			if err != nil {
				logger.GetLogger().
					WithField("error_code", "9fab4b2e-1d70-4a4e-928a-5e81c7ee06de").
					Errorf("unable to open read replica: %v", err)
				return nil, err
			}
			replicas = append(replicas, replica)
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			logger.GetLogger().
				WithField("error_code", "07217a04-80f1-466f-8d2c-cdd162dd9ccb").
				Errorf("unable to set up read replicas: %v", err)
			return nil, err
		}
	}

	return db, nil
}
