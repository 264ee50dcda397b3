package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"resty.dev/v3"

	"duckdata.io/duckdb-data-api/app/utils/httpclients"
	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

// UpstashCacheService talks to Upstash Redis over its REST protocol, which
// works from serverless environments where a raw Redis socket does not.
type UpstashCacheService struct {
	client  *resty.Client
	baseURL string
}

type upstashReply struct {
	Result any    `json:"result"`
	Error  string `json:"error"`
}

// NewUpstashCacheService creates a cache service backed by the Upstash REST API
func NewUpstashCacheService() CacheService {
	baseURL := environment_variables.EnvironmentVariables.UPSTASH_REDIS_REST_URL
	token := environment_variables.EnvironmentVariables.UPSTASH_REDIS_REST_TOKEN
	if baseURL == "" || token == "" {
		logger.GetLogger().Error("Upstash cache selected but UPSTASH_REDIS_REST_URL/UPSTASH_REDIS_REST_TOKEN are not set")
		return &NoOpCacheService{}
	}

	client := httpclients.NewClient("UpstashCacheClient").SetAuthToken(token)

	service := &UpstashCacheService{
		client:  client,
		baseURL: baseURL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := service.HealthCheck(ctx); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to connect to Upstash: %v", err))
	} else {
		logger.GetLogger().Info("Successfully connected to Upstash")
	}
	return service
}

// do sends a single Redis command as a JSON array, the Upstash REST calling
// convention, and returns the decoded result field.
func (u *UpstashCacheService) do(ctx context.Context, command ...any) (any, error) {
	var reply upstashReply
	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(command).
		SetResult(&reply).
		SetError(&reply).
		Post(u.baseURL)
	if err != nil {
		return nil, fmt.Errorf("upstash request failed: %w", err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("upstash command failed: %s", reply.Error)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstash request failed: %s", resp.Status())
	}
	return reply.Result, nil
}

// Set stores a value, with EX applied when an expiration is requested
func (u *UpstashCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	command := []any{"SET", key, value}
	if expiration > 0 {
		command = append(command, "EX", int(expiration.Seconds()))
	}
	_, err := u.do(ctx, command...)
	return err
}

// Get retrieves a value; a null result is a miss
func (u *UpstashCacheService) Get(ctx context.Context, key string) (string, error) {
	result, err := u.do(ctx, "GET", key)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ErrCacheMiss
	}
	value, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("upstash returned unexpected type %T for key %s", result, key)
	}
	return value, nil
}

// Delete removes a key
func (u *UpstashCacheService) Delete(ctx context.Context, key string) error {
	_, err := u.do(ctx, "UNLINK", key)
	return err
}

// DeletePattern removes all keys matching a pattern via SCAN
func (u *UpstashCacheService) DeletePattern(ctx context.Context, pattern string) error {
	cursor := "0"
	for {
		result, err := u.do(ctx, "SCAN", cursor, "MATCH", pattern, "COUNT", 1000)
		if err != nil {
			return err
		}
		page, ok := result.([]any)
		if !ok || len(page) != 2 {
			return fmt.Errorf("upstash returned malformed SCAN reply: %v", result)
		}
		cursor = fmt.Sprintf("%v", page[0])
		if keys, ok := page[1].([]any); ok {
			for _, key := range keys {
				if _, err := u.do(ctx, "UNLINK", key); err != nil {
					return err
				}
			}
		}
		if cursor == "0" {
			return nil
		}
	}
}

// Exists checks if a key exists
func (u *UpstashCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result, err := u.do(ctx, "EXISTS", key)
	if err != nil {
		return false, err
	}
	count, err := strconv.ParseFloat(fmt.Sprintf("%v", result), 64)
	if err != nil {
		return false, fmt.Errorf("upstash returned malformed EXISTS reply: %v", result)
	}
	return count > 0, nil
}

// Close releases the underlying HTTP client
func (u *UpstashCacheService) Close() error {
	return u.client.Close()
}

// HealthCheck verifies Upstash connectivity
func (u *UpstashCacheService) HealthCheck(ctx context.Context) error {
	_, err := u.do(ctx, "PING")
	return err
}

// NewMutex returns nil; redsync needs a real Redis connection, which the
// REST protocol does not provide
func (u *UpstashCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return nil
}
