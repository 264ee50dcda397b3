package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"duckdata.io/duckdb-data-api/app/infrastructure/cache"
	"duckdata.io/duckdb-data-api/app/interfaces/http/responses"
	"duckdata.io/duckdb-data-api/app/utils/logger"
	"duckdata.io/duckdb-data-api/config/environment_variables"
)

// KeyStrategy computes the part of a cache key that distinguishes two
// requests sharing a method and path. ok is false when no key can be
// derived, which disables caching for the request.
type KeyStrategy func(reqCtx *gin.Context) (discriminator string, ok bool)

// CachePolicy declares one {method, path} shape. An empty Path and
// PathPrefix match every path of the method. The first matching policy
// wins; a nil Discriminator marks the shape as never cacheable.
type CachePolicy struct {
	Method        string
	Path          string
	PathPrefix    string
	Discriminator KeyStrategy
}

// DefaultCachePolicies covers idempotent reads plus ad-hoc SQL execution,
// the one mutating endpoint whose responses are content-addressed by body.
// The swagger UI and the delta profiles are excluded: profiles change on
// every sample and the UI serves non-JSON assets.
func DefaultCachePolicies() []CachePolicy {
	return []CachePolicy{
		{Method: http.MethodGet, PathPrefix: "/docs/"},
		{Method: http.MethodGet, PathPrefix: "/debug/pprof/"},
		{Method: http.MethodGet, Discriminator: RawQueryStrategy},
		{Method: http.MethodPost, Path: "/execute/sql", Discriminator: BodyDigestStrategy},
	}
}

// RawQueryStrategy keys a read by its query string, kept in wire order.
func RawQueryStrategy(reqCtx *gin.Context) (string, bool) {
	return reqCtx.Request.URL.RawQuery, true
}

// BodyDigestStrategy keys a request by an MD5 digest of its raw body bytes.
// The body is restored afterwards so downstream handlers can read it again;
// if it cannot be read, the request stays uncacheable and the handler
// receives an empty body.
func BodyDigestStrategy(reqCtx *gin.Context) (string, bool) {
	var body []byte
	if reqCtx.Request.Body != nil {
		var err error
		body, err = io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(nil))
			return "", false
		}
	}
	reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	digest := md5.Sum(body)
	return hex.EncodeToString(digest[:]), true
}

// buildCacheKey resolves the first matching policy into a normalized key:
// "duckdb-data-api:{method}-{path}?{discriminator}", fully lowercased.
func buildCacheKey(reqCtx *gin.Context, policies []CachePolicy) (string, bool) {
	for _, policy := range policies {
		if reqCtx.Request.Method != policy.Method {
			continue
		}
		if policy.Path != "" && !strings.EqualFold(policy.Path, reqCtx.Request.URL.Path) {
			continue
		}
		if policy.PathPrefix != "" && !strings.HasPrefix(strings.ToLower(reqCtx.Request.URL.Path), policy.PathPrefix) {
			continue
		}
		if policy.Discriminator == nil {
			return "", false
		}
		discriminator, ok := policy.Discriminator(reqCtx)
		if !ok {
			return "", false
		}
		key := cache.KeyPrefix + reqCtx.Request.Method + "-" + reqCtx.Request.URL.Path + "?" + discriminator
		return strings.ToLower(key), true
	}
	return "", false
}

// cacheWriter withholds the downstream response from the wire so the body
// can be stored and replayed with recomputed headers. Requests without a
// cache key never see this writer and keep streaming straight through.
type cacheWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *cacheWriter) WriteHeader(code int) {
	w.status = code
}

func (w *cacheWriter) WriteHeaderNow() {}

func (w *cacheWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *cacheWriter) Status() int {
	return w.status
}

func (w *cacheWriter) Size() int {
	return w.body.Len()
}

func (w *cacheWriter) Written() bool {
	return w.body.Len() > 0
}

// forwardTo releases the withheld response unchanged.
func (w *cacheWriter) forwardTo(writer gin.ResponseWriter) {
	writer.WriteHeader(w.status)
	if w.body.Len() > 0 {
		writer.Write(w.body.Bytes())
	}
}

func cacheTTL() time.Duration {
	return time.Duration(environment_variables.EnvironmentVariables.CACHE_TTL_SECONDS) * time.Second
}

// CacheMiddleware serves cacheable requests cache-aside: a hit short-circuits
// the handler chain, a miss runs it, and a 200 response is stored before
// being replayed to the client. Store failures fail the request; concurrent
// identical misses settle last-write-wins.
func CacheMiddleware(cacheService cache.CacheService, policies []CachePolicy) gin.HandlerFunc {
	log := logger.GetLogger()
	return func(reqCtx *gin.Context) {
		key, ok := buildCacheKey(reqCtx, policies)
		if !ok {
			reqCtx.Next()
			return
		}

		ctx := reqCtx.Request.Context()
		cached, err := cacheService.Get(ctx, key)
		if err == nil {
			log.Infof("cache hit for key: %s", key)
			reqCtx.Header("Content-Length", strconv.Itoa(len(cached)))
			reqCtx.Data(http.StatusOK, "application/json", []byte(cached))
			reqCtx.Abort()
			return
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.WithField("error_code", "e3f9b4d0-6d5f-4b8a-9f2e-3a7c1d2b8f41").
				Errorf("cache lookup failed for key %s: %v", key, err)
			reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code:  "e3f9b4d0-6d5f-4b8a-9f2e-3a7c1d2b8f41",
				Error: "cache lookup failed",
			})
			return
		}
		log.Infof("cache miss for key: %s", key)

		writer := reqCtx.Writer
		capture := &cacheWriter{ResponseWriter: writer, body: &bytes.Buffer{}, status: http.StatusOK}
		reqCtx.Writer = capture
		// Restored in a defer too: a handler panic must unwind with the
		// real writer in place for the recovery middleware to write its 500.
		defer func() { reqCtx.Writer = writer }()
		reqCtx.Next()
		reqCtx.Writer = writer

		if capture.status != http.StatusOK {
			capture.forwardTo(writer)
			return
		}

		payload := capture.body.String()
		if err := cacheService.Set(ctx, key, payload, cacheTTL()); err != nil {
			log.WithField("error_code", "7b1fa2c9-4e88-4d6b-a0c3-95d1f63f0c52").
				Errorf("failed to cache response for key %s: %v", key, err)
			reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code:  "7b1fa2c9-4e88-4d6b-a0c3-95d1f63f0c52",
				Error: "failed to cache response",
			})
			return
		}
		log.Infof("cached response for key: %s", key)

		header := writer.Header()
		header.Set("Content-Type", "application/json")
		header.Set("Content-Length", strconv.Itoa(len(payload)))
		writer.WriteHeader(http.StatusOK)
		writer.WriteString(payload)
	}
}
