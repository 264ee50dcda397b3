package tables

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/domain/catalog"
	"duckdata.io/duckdb-data-api/app/domain/entity"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
	"duckdata.io/duckdb-data-api/app/utils/logger"
)

// TablesRoute exposes every catalog table as CRUD endpoints. Table names
// are validated against the live catalog before any SQL is built.
type TablesRoute struct {
	entityService  *entity.EntityService
	catalogService *catalog.CatalogService
}

func NewTablesRoute(entityService *entity.EntityService, catalogService *catalog.CatalogService) *TablesRoute {
	return &TablesRoute{
		entityService:  entityService,
		catalogService: catalogService,
	}
}

func (route *TablesRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/:table", route.ListEntities)
	router.GET("/:table/:id", route.GetEntity)
	router.POST("/:table", route.CreateEntity)
	router.PATCH("/:table/:id", route.UpdateEntity)
	router.PUT("/:table/:id", route.ReplaceEntity)
	router.DELETE("/:table/:id", route.DeleteEntity)
}

// validateTable aborts with 404 when the table is not in the catalog and
// returns whether the handler may proceed.
func (route *TablesRoute) validateTable(reqCtx *gin.Context) (string, bool) {
	table := reqCtx.Param("table")
	exists, err := route.catalogService.TableExists(reqCtx.Request.Context(), table)
	if err != nil {
		logger.GetLogger().Errorf("tables: failed to validate table %s: %v", table, err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a4821f0c-3be2-4e18-b8d5-617cf0a2b9d3",
			Error: "failed to validate table",
		})
		return "", false
	}
	if !exists {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "4f6f9f0a-78f6-44f6-9c2e-2f1b8c1d5a07",
			Error: "Table not found",
		})
		return "", false
	}
	return table, true
}

func (route *TablesRoute) bindBody(reqCtx *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := reqCtx.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "0b3fb0d2-5ee0-45c9-9b88-6cf2a4d0e711",
			Error: "request body must be a non-empty JSON object",
		})
		return nil, false
	}
	return body, true
}

// ListEntities godoc
// @Summary     Read table rows
// @Description Reads rows with optional select, order, limit, offset and column-filter parameters (.eq .gt .gte .lt .lte .neq .like suffixes).
// @Tags        tables
// @Produce     json
// @Param       table  path  string true  "table name"
// @Param       select query string false "projection, defaults to *"
// @Param       order  query string false "order by clause"
// @Param       limit  query int    false "page size, defaults to 100"
// @Param       offset query int    false "rows to skip"
// @Success     200 {object} entity.Page
// @Failure     404 {object} responses.ErrorResponse
// @Router      /{table} [get]
func (route *TablesRoute) ListEntities(reqCtx *gin.Context) {
	table, ok := route.validateTable(reqCtx)
	if !ok {
		return
	}

	filters, err := entity.ParseFilters(reqCtx.Request.URL.Query())
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "83c2f0de-a1b4-4f5c-8f2f-90b1d7c64a28",
			Error: err.Error(),
		})
		return
	}
	limit, _ := strconv.Atoi(reqCtx.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(reqCtx.DefaultQuery("offset", "0"))

	page, err := route.entityService.List(reqCtx.Request.Context(), table, entity.ListQuery{
		Select:  reqCtx.DefaultQuery("select", "*"),
		Order:   reqCtx.Query("order"),
		Limit:   limit,
		Offset:  offset,
		Filters: filters,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "59f11c5a-4f2b-45c0-9d4f-bb0e2c6a817d",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// GetEntity godoc
// @Summary     Read a single row by id
// @Tags        tables
// @Produce     json
// @Param       table path string true "table name"
// @Param       id    path string true "row id"
// @Success     200 {object} map[string]any
// @Failure     404 {object} responses.ErrorResponse
// @Router      /{table}/{id} [get]
func (route *TablesRoute) GetEntity(reqCtx *gin.Context) {
	table, ok := route.validateTable(reqCtx)
	if !ok {
		return
	}
	id := reqCtx.Param("id")

	row, err := route.entityService.GetByID(reqCtx.Request.Context(), table, id)
	if err != nil {
		route.respondEntityError(reqCtx, table, id, err)
		return
	}
	reqCtx.JSON(http.StatusOK, row)
}

// CreateEntity godoc
// @Summary     Insert a row
// @Description Inserts a row built from the JSON object body and returns it.
// @Tags        tables
// @Accept      json
// @Produce     json
// @Param       table path string         true "table name"
// @Param       body  body map[string]any true "column values"
// @Success     200 {object} map[string]any
// @Failure     404 {object} responses.ErrorResponse
// @Router      /{table} [post]
func (route *TablesRoute) CreateEntity(reqCtx *gin.Context) {
	table, ok := route.validateTable(reqCtx)
	if !ok {
		return
	}
	body, ok := route.bindBody(reqCtx)
	if !ok {
		return
	}

	row, err := route.entityService.Create(reqCtx.Request.Context(), table, body)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "9d0b9c4f-57fb-4f89-8f6e-0c1d2a3b4c5d",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, row)
}

// UpdateEntity godoc
// @Summary     Partially update a row
// @Tags        tables
// @Accept      json
// @Produce     json
// @Param       table path string         true "table name"
// @Param       id    path string         true "row id"
// @Param       body  body map[string]any true "column values"
// @Success     200 {object} map[string]any
// @Failure     404 {object} responses.ErrorResponse
// @Router      /{table}/{id} [patch]
func (route *TablesRoute) UpdateEntity(reqCtx *gin.Context) {
	route.update(reqCtx)
}

// ReplaceEntity godoc
// @Summary     Replace a row
// @Description Full replacement; shares the UPDATE statement shape with PATCH.
// @Tags        tables
// @Accept      json
// @Produce     json
// @Param       table path string         true "table name"
// @Param       id    path string         true "row id"
// @Param       body  body map[string]any true "column values"
// @Success     200 {object} map[string]any
// @Failure     404 {object} responses.ErrorResponse
// @Router      /{table}/{id} [put]
func (route *TablesRoute) ReplaceEntity(reqCtx *gin.Context) {
	route.update(reqCtx)
}

func (route *TablesRoute) update(reqCtx *gin.Context) {
	table, ok := route.validateTable(reqCtx)
	if !ok {
		return
	}
	body, ok := route.bindBody(reqCtx)
	if !ok {
		return
	}
	id := reqCtx.Param("id")

	row, err := route.entityService.Update(reqCtx.Request.Context(), table, id, body)
	if err != nil {
		route.respondEntityError(reqCtx, table, id, err)
		return
	}
	reqCtx.JSON(http.StatusOK, row)
}

// DeleteEntity godoc
// @Summary     Delete a row
// @Tags        tables
// @Produce     json
// @Param       table path string true "table name"
// @Param       id    path string true "row id"
// @Success     200 {object} responses.MessageResponse
// @Failure     404 {object} responses.ErrorResponse
// @Router      /{table}/{id} [delete]
func (route *TablesRoute) DeleteEntity(reqCtx *gin.Context) {
	table, ok := route.validateTable(reqCtx)
	if !ok {
		return
	}
	id := reqCtx.Param("id")

	if err := route.entityService.Delete(reqCtx.Request.Context(), table, id); err != nil {
		route.respondEntityError(reqCtx, table, id, err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.MessageResponse{
		Message: fmt.Sprintf("Record [%s] deleted successfully from [%s.%s]", id, catalog.SchemaName(), table),
	})
}

func (route *TablesRoute) respondEntityError(reqCtx *gin.Context, table string, id string, err error) {
	if errors.Is(err, entity.ErrNotFound) {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "2ab8e1df-6d02-4c44-86a1-3f7d9b0c52e6",
			Error: fmt.Sprintf("Record [%s] not found in [%s.%s]", id, catalog.SchemaName(), table),
		})
		return
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
		Code:  "6c4b2d8e-9f03-41d7-b5a2-84e0c1f7d923",
		Error: err.Error(),
	})
}
