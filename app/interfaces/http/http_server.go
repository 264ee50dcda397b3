package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	deltapprof "github.com/grafana/pyroscope-go/godeltaprof/http/pprof"
	swaggofiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
	"duckdata.io/duckdb-data-api/app/interfaces/http/middleware"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/admin"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/assist"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/execute"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/mcp"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/metadata"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/sqltools"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/system"
	"duckdata.io/duckdb-data-api/app/interfaces/http/routes/tables"
	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
	_ "duckdata.io/duckdb-data-api/docs"
)

type HttpServer struct {
	engine        *gin.Engine
	systemRoute   *system.SystemRoute
	metadataRoute *metadata.MetadataRoute
	tablesRoute   *tables.TablesRoute
	executeRoute  *execute.ExecuteRoute
	sqlToolsRoute *sqltools.SQLToolsRoute
	assistRoute   *assist.AssistRoute
	cacheRoute    *admin.CacheRoute
	mcpAPI        *mcp.MCPAPI
}

func NewHttpServer(
	cacheService cache.CacheService,
	systemRoute *system.SystemRoute,
	metadataRoute *metadata.MetadataRoute,
	tablesRoute *tables.TablesRoute,
	executeRoute *execute.ExecuteRoute,
	sqlToolsRoute *sqltools.SQLToolsRoute,
	assistRoute *assist.AssistRoute,
	cacheRoute *admin.CacheRoute,
	mcpAPI *mcp.MCPAPI,
) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	engine.Use(middleware.CORS())
	engine.Use(middleware.CacheMiddleware(cacheService, middleware.DefaultCachePolicies()))

	server := HttpServer{
		engine:        engine,
		systemRoute:   systemRoute,
		metadataRoute: metadataRoute,
		tablesRoute:   tablesRoute,
		executeRoute:  executeRoute,
		sqlToolsRoute: sqlToolsRoute,
		assistRoute:   assistRoute,
		cacheRoute:    cacheRoute,
		mcpAPI:        mcpAPI,
	}
	server.engine.GET("/health-check", func(c *gin.Context) {
		c.JSON(200, "ok")
	})
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.API_PORT
	if port == 0 {
		port = 8080
	}

	rootRouter := httpServer.engine.Group("/")
	httpServer.systemRoute.RegisterRouter(rootRouter)
	httpServer.metadataRoute.RegisterRouter(rootRouter)
	httpServer.executeRoute.RegisterRouter(rootRouter)
	httpServer.sqlToolsRoute.RegisterRouter(rootRouter)
	httpServer.assistRoute.RegisterRouter(rootRouter)
	httpServer.cacheRoute.RegisterRouter(rootRouter)
	httpServer.mcpAPI.RegisterRouter(rootRouter)
	// Dynamic table endpoints register last; static routes take precedence.
	httpServer.tablesRoute.RegisterRouter(rootRouter)

	httpServer.engine.GET("/docs/*any", ginswagger.WrapHandler(swaggofiles.Handler))
	httpServer.engine.GET("/debug/pprof/delta_heap", gin.WrapF(deltapprof.Heap))
	httpServer.engine.GET("/debug/pprof/delta_block", gin.WrapF(deltapprof.Block))
	httpServer.engine.GET("/debug/pprof/delta_mutex", gin.WrapF(deltapprof.Mutex))

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
