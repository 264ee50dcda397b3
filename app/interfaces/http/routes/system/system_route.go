package system

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
	"duckdata.io/duckdb-data-api/config"
)

// SystemRoute serves the liveness and debugging endpoints.
type SystemRoute struct {
	db *gorm.DB
}

func NewSystemRoute(db *gorm.DB) *SystemRoute {
	return &SystemRoute{db: db}
}

func (route *SystemRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/", route.Root)
	router.GET("/health", route.Health)
	router.GET("/version", route.Version)
	router.GET("/debug/connection", route.DebugConnection)
}

// Root godoc
// @Summary     Welcome message
// @Tags        system
// @Produce     json
// @Success     200 {object} responses.MessageResponse
// @Router      / [get]
func (route *SystemRoute) Root(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, responses.MessageResponse{
		Message: "Welcome to DuckDB Data Proxy!",
	})
}

// Health godoc
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} responses.MessageResponse
// @Router      /health [get]
func (route *SystemRoute) Health(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, responses.MessageResponse{
		Message: "I am doing great!",
	})
}

// Version godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /version [get]
func (route *SystemRoute) Version(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}

// DebugConnection godoc
// @Summary     Test database connectivity
// @Description Runs SELECT 1 against the backing database and reports the result.
// @Tags        system
// @Produce     json
// @Success     200 {object} responses.StatusResponse
// @Router      /debug/connection [get]
func (route *SystemRoute) DebugConnection(reqCtx *gin.Context) {
	var one int
	if err := route.db.WithContext(reqCtx.Request.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		reqCtx.JSON(http.StatusOK, responses.StatusResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.StatusResponse{
		Status:  "success",
		Message: "Database connection established successfully.",
	})
}
