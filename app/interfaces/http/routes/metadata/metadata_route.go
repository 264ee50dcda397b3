package metadata

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/domain/catalog"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
	"duckdata.io/duckdb-data-api/app/utils/logger"
)

// MetadataRoute exposes schema metadata.
type MetadataRoute struct {
	catalogService *catalog.CatalogService
}

func NewMetadataRoute(catalogService *catalog.CatalogService) *MetadataRoute {
	return &MetadataRoute{catalogService: catalogService}
}

func (route *MetadataRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/metadata/tables", route.ListTables)
}

// ListTables godoc
// @Summary     List tables
// @Description Lists all tables of the configured schema.
// @Tags        metadata
// @Produce     json
// @Success     200 {array} string
// @Failure     500 {object} responses.ErrorResponse
// @Router      /metadata/tables [get]
func (route *MetadataRoute) ListTables(reqCtx *gin.Context) {
	tables, err := route.catalogService.ListTables(reqCtx.Request.Context())
	if err != nil {
		logger.GetLogger().Errorf("metadata: failed to list tables: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "12cf43a8-91d4-4f6e-9b0a-8c5f2d17e604",
			Error: "failed to list tables",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, tables)
}
