package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
	"duckdata.io/duckdb-data-api/app/utils/logger"
)

// CacheRoute exposes administrative cache operations.
type CacheRoute struct {
	cacheService cache.CacheService
}

// NewCacheRoute constructs a CacheRoute instance.
func NewCacheRoute(cacheService cache.CacheService) *CacheRoute {
	return &CacheRoute{cacheService: cacheService}
}

// RegisterRouter wires the administrative cache endpoints.
func (route *CacheRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin")
	adminRouter.POST("/cache/invalidate", route.InvalidateCache)
}

// CacheInvalidateResponse represents the result of a cache invalidation request.
type CacheInvalidateResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// InvalidateCache godoc
// @Summary     Invalidate cached responses
// @Description Removes every key under this service's cache namespace.
// @Tags        admin
// @Produce     json
// @Success     200 {object} CacheInvalidateResponse
// @Failure     500 {object} responses.ErrorResponse
// @Router      /admin/cache/invalidate [post]
func (route *CacheRoute) InvalidateCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := route.cacheService.DeletePattern(ctx, cache.KeyPrefix+"*"); err != nil {
		logger.GetLogger().Errorf("admin cache: failed to invalidate cache: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b0c4f1c8-2a3b-4ad4-8b1d-7a2124d7c7b1",
			Error: "failed to invalidate cache",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "cache invalidated",
	})
}
