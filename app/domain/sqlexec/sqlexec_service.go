package sqlexec

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"duckdata.io/duckdb-data-api/config/environment_variables"
)

// ErrBlacklisted reports that a query contains a prohibited keyword.
var ErrBlacklisted = errors.New("sqlexec: query contains prohibited keywords")

// Result carries the outcome of an ad-hoc statement. Select distinguishes
// row-returning queries from DDL/DML executions.
type Result struct {
	Select    bool
	Data      []map[string]any
	TotalRows int
}

// IsSelect reports whether the query reads rows rather than mutating state.
func IsSelect(query string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(query)), "select")
}

// SQLExecService runs ad-hoc SQL behind the configured keyword blacklist.
type SQLExecService struct {
	db *gorm.DB
}

func NewSQLExecService(db *gorm.DB) *SQLExecService {
	return &SQLExecService{db: db}
}

// IsBlacklisted reports whether the query contains any of the keywords from
// QUERY_BLACKLIST. Matching is a lowercase substring check.
func (s *SQLExecService) IsBlacklisted(query string) bool {
	lower := strings.ToLower(query)
	for _, keyword := range environment_variables.EnvironmentVariables.QUERY_BLACKLIST {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Execute runs the query. SELECT statements return their rows; anything
// else runs as a plain execution.
func (s *SQLExecService) Execute(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if s.IsBlacklisted(query) {
		return nil, ErrBlacklisted
	}

	if IsSelect(query) {
		data := []map[string]any{}
		if err := s.db.WithContext(ctx).Raw(query).Scan(&data).Error; err != nil {
			return nil, err
		}
		return &Result{Select: true, Data: data, TotalRows: len(data)}, nil
	}

	if err := s.db.WithContext(ctx).Exec(query).Error; err != nil {
		return nil, err
	}
	return &Result{Select: false}, nil
}
