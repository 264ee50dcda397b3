package assist

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"duckdata.io/duckdb-data-api/app/domain/catalog"
	"duckdata.io/duckdb-data-api/app/utils/functional"
	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

const systemPrompt = "You translate natural language into a single DuckDB SELECT statement. " +
	"Reply with the SQL statement only, no prose and no code fences."

// AssistService drafts SQL from natural language through an OpenAI-compatible
// model. The draft is never executed; callers review it first.
type AssistService struct {
	catalogService *catalog.CatalogService
	client         *openai.Client
	model          string
}

func NewAssistService(catalogService *catalog.CatalogService) *AssistService {
	cfg := openai.DefaultConfig(environment_variables.EnvironmentVariables.OPENAI_API_KEY)
	if baseURL := environment_variables.EnvironmentVariables.OPENAI_BASE_URL; baseURL != "" {
		cfg.BaseURL = baseURL
	}
	model := environment_variables.EnvironmentVariables.OPENAI_MODEL
	if model == "" {
		model = openai.GPT4oMini
	}
	return &AssistService{
		catalogService: catalogService,
		client:         openai.NewClientWithConfig(cfg),
		model:          model,
	}
}

// Enabled reports whether an API key is configured.
func (s *AssistService) Enabled() bool {
	return environment_variables.EnvironmentVariables.OPENAI_API_KEY != ""
}

// DraftSQL asks the model for a SELECT statement answering the prompt. The
// schema's table list rides along in the system prompt when available.
func (s *AssistService) DraftSQL(ctx context.Context, prompt string) (string, error) {
	system := systemPrompt
	if tables, err := s.catalogService.ListTables(ctx); err == nil && len(tables) > 0 {
		lines := functional.Map(tables, func(table string) string {
			return "- " + catalog.SchemaName() + "." + table
		})
		system += "\nAvailable tables:\n" + strings.Join(lines, "\n")
	} else if err != nil {
		logger.GetLogger().Warnf("assist: drafting without table list: %v", err)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("assist: model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
