package sqltools

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/domain/sqlparse"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
)

// SQLToolsRoute exposes SQL rewriting and analysis; nothing here touches
// the database.
type SQLToolsRoute struct {
	sqlParseService *sqlparse.SQLParseService
}

func NewSQLToolsRoute(sqlParseService *sqlparse.SQLParseService) *SQLToolsRoute {
	return &SQLToolsRoute{sqlParseService: sqlParseService}
}

func (route *SQLToolsRoute) RegisterRouter(router gin.IRouter) {
	sqlRouter := router.Group("/sql")
	sqlRouter.POST("/transpile", route.Transpile)
	sqlRouter.POST("/prettify", route.Prettify)
	sqlRouter.POST("/extract/column", route.ExtractColumns)
	sqlRouter.POST("/extract/table", route.ExtractTables)
	sqlRouter.POST("/extract/projection", route.ExtractProjections)
}

type SQLRequest struct {
	SQL string `json:"sql" binding:"required"`
}

type SQLResultResponse struct {
	ResultSQL string `json:"result_sql"`
}

type SQLDataResponse struct {
	Data []string `json:"data"`
}

func (route *SQLToolsRoute) bind(reqCtx *gin.Context) (string, bool) {
	var req SQLRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "b6d91e2f-8c04-4a57-b3f8-1e6a0d5c2497",
			Error: "request body must contain a sql field",
		})
		return "", false
	}
	return req.SQL, true
}

func (route *SQLToolsRoute) respond(reqCtx *gin.Context, result string, err error) {
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8a3c5f71-d20e-4b96-a4d1-7f0b2c8e6153",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, SQLResultResponse{ResultSQL: result})
}

func (route *SQLToolsRoute) respondData(reqCtx *gin.Context, data []string, err error) {
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8a3c5f71-d20e-4b96-a4d1-7f0b2c8e6153",
			Error: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, SQLDataResponse{Data: data})
}

// Transpile godoc
// @Summary     Transpile SQL
// @Description Parses the statement and re-emits it with quoted identifiers.
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body SQLRequest true "sql to transpile"
// @Success     200 {object} SQLResultResponse
// @Failure     400 {object} responses.ErrorResponse
// @Router      /sql/transpile [post]
func (route *SQLToolsRoute) Transpile(reqCtx *gin.Context) {
	sql, ok := route.bind(reqCtx)
	if !ok {
		return
	}
	result, err := route.sqlParseService.Transpile(sql)
	route.respond(reqCtx, result, err)
}

// Prettify godoc
// @Summary     Prettify SQL
// @Description Re-renders the statement in canonical form.
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body SQLRequest true "sql to prettify"
// @Success     200 {object} SQLResultResponse
// @Failure     400 {object} responses.ErrorResponse
// @Router      /sql/prettify [post]
func (route *SQLToolsRoute) Prettify(reqCtx *gin.Context) {
	sql, ok := route.bind(reqCtx)
	if !ok {
		return
	}
	result, err := route.sqlParseService.Prettify(sql)
	route.respond(reqCtx, result, err)
}

// ExtractColumns godoc
// @Summary     Extract column names
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body SQLRequest true "sql to analyze"
// @Success     200 {object} SQLDataResponse
// @Failure     400 {object} responses.ErrorResponse
// @Router      /sql/extract/column [post]
func (route *SQLToolsRoute) ExtractColumns(reqCtx *gin.Context) {
	sql, ok := route.bind(reqCtx)
	if !ok {
		return
	}
	data, err := route.sqlParseService.ExtractColumns(sql)
	route.respondData(reqCtx, data, err)
}

// ExtractTables godoc
// @Summary     Extract table names
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body SQLRequest true "sql to analyze"
// @Success     200 {object} SQLDataResponse
// @Failure     400 {object} responses.ErrorResponse
// @Router      /sql/extract/table [post]
func (route *SQLToolsRoute) ExtractTables(reqCtx *gin.Context) {
	sql, ok := route.bind(reqCtx)
	if !ok {
		return
	}
	data, err := route.sqlParseService.ExtractTables(sql)
	route.respondData(reqCtx, data, err)
}

// ExtractProjections godoc
// @Summary     Extract projection names
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body SQLRequest true "sql to analyze"
// @Success     200 {object} SQLDataResponse
// @Failure     400 {object} responses.ErrorResponse
// @Router      /sql/extract/projection [post]
func (route *SQLToolsRoute) ExtractProjections(reqCtx *gin.Context) {
	sql, ok := route.bind(reqCtx)
	if !ok {
		return
	}
	data, err := route.sqlParseService.ExtractProjections(sql)
	route.respondData(reqCtx, data, err)
}
