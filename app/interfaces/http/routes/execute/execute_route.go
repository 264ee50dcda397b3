package execute

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/domain/sqlexec"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
)

// ExecuteRoute runs ad-hoc SQL behind the keyword blacklist.
type ExecuteRoute struct {
	sqlExecService *sqlexec.SQLExecService
}

func NewExecuteRoute(sqlExecService *sqlexec.SQLExecService) *ExecuteRoute {
	return &ExecuteRoute{sqlExecService: sqlExecService}
}

func (route *ExecuteRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/execute/sql", route.ExecuteSQL)
}

type ExecuteSQLRequest struct {
	Query string `json:"query" binding:"required"`
}

type SelectResponse struct {
	Data      []map[string]any `json:"data"`
	TotalRows int              `json:"total_rows"`
}

// ExecuteSQL godoc
// @Summary     Execute ad-hoc SQL
// @Description Executes a custom SQL query. SELECT statements return their rows; other statements return a confirmation message. Queries containing blacklisted keywords are rejected.
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body ExecuteSQLRequest true "query to execute"
// @Success     200 {object} SelectResponse
// @Failure     400 {object} responses.ErrorResponse
// @Failure     403 {object} responses.ErrorResponse
// @Router      /execute/sql [post]
func (route *ExecuteRoute) ExecuteSQL(reqCtx *gin.Context) {
	var req ExecuteSQLRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "f1d28c3a-6e97-4b10-bd52-7c4e0a918f36",
			Error: "request body must contain a query field",
		})
		return
	}

	result, err := route.sqlExecService.Execute(reqCtx.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, sqlexec.ErrBlacklisted) {
			reqCtx.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
				Code:  "37e0b9f5-21da-4a8c-9d63-5b8f0c2e1a74",
				Error: "The query contains prohibited keywords.",
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c85d3f1e-0a92-47b6-8e15-d4b7a6c90f23",
			Error: err.Error(),
		})
		return
	}

	if result.Select {
		reqCtx.JSON(http.StatusOK, SelectResponse{
			Data:      result.Data,
			TotalRows: result.TotalRows,
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.MessageResponse{
		Message: "Query executed successfully",
	})
}
