package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/domain/assist"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
	"duckdata.io/duckdb-data-api/app/utils/logger"
)

// AssistRoute drafts SQL from natural language. Available only when an
// OpenAI-compatible API key is configured.
type AssistRoute struct {
	assistService *assist.AssistService
}

func NewAssistRoute(assistService *assist.AssistService) *AssistRoute {
	return &AssistRoute{assistService: assistService}
}

func (route *AssistRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/sql/assist", route.Draft)
}

type AssistRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type AssistResponse struct {
	ResultSQL string `json:"result_sql"`
}

// Draft godoc
// @Summary     Draft SQL from natural language
// @Description Asks an OpenAI-compatible model for a SELECT statement answering the prompt. The draft is returned, never executed.
// @Tags        sql
// @Accept      json
// @Produce     json
// @Param       request body AssistRequest true "natural language prompt"
// @Success     200 {object} AssistResponse
// @Failure     400 {object} responses.ErrorResponse
// @Failure     503 {object} responses.ErrorResponse
// @Router      /sql/assist [post]
func (route *AssistRoute) Draft(reqCtx *gin.Context) {
	if !route.assistService.Enabled() {
		reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Code:  "5e7a1c93-2b84-4d06-9f3a-c1d8e6b0257f",
			Error: "sql assist is not configured",
		})
		return
	}

	var req AssistRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d91f4b27-8a60-4e35-bc78-02f5e3a1c946",
			Error: "request body must contain a prompt field",
		})
		return
	}

	draft, err := route.assistService.DraftSQL(reqCtx.Request.Context(), req.Prompt)
	if err != nil {
		logger.GetLogger().Errorf("assist: drafting failed: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
			Code:  "74c8d2e1-5f9b-40a3-8d67-e1b0f2a3c584",
			Error: "failed to draft sql",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, AssistResponse{ResultSQL: draft})
}
