package entity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"gorm.io/gorm"

	"duckdata.io/duckdb-data-api/app/domain/catalog"
	"duckdata.io/duckdb-data-api/app/utils/stringutils"
)

// ErrNotFound reports that no row matched the requested id.
var ErrNotFound = errors.New("entity: record not found")

// Filter is one WHERE condition translated from a query parameter.
type Filter struct {
	Column   string
	Operator string
	Value    string
}

// ListQuery carries the read options of a table listing.
type ListQuery struct {
	Select  string
	Order   string
	Limit   int
	Offset  int
	Filters []Filter
}

// Page is the envelope a table listing responds with.
type Page struct {
	TotalRows   int64            `json:"total_rows"`
	TotalPages  int64            `json:"total_pages"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
	CurrentPage int64            `json:"current_page"`
	Data        []map[string]any `json:"data"`
}

// reservedParams are read options, not column filters.
var reservedParams = map[string]bool{
	"select": true,
	"limit":  true,
	"offset": true,
	"order":  true,
}

// operatorSuffixes maps filter suffixes to SQL comparison operators. ILIKE
// keeps text matching case-insensitive, as DuckDB supports it natively.
var operatorSuffixes = []struct {
	suffix   string
	operator string
}{
	{".gte", ">="},
	{".lte", "<="},
	{".neq", "<>"},
	{".like", "ILIKE"},
	{".eq", "="},
	{".gt", ">"},
	{".lt", "<"},
}

// ParseFilters translates column-filter query parameters into Filters.
// Column names must be bare identifiers; values travel as named binds.
func ParseFilters(params url.Values) ([]Filter, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		if !reservedParams[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	filters := make([]Filter, 0, len(keys))
	for _, key := range keys {
		column := key
		operator := "="
		for _, candidate := range operatorSuffixes {
			if strings.HasSuffix(key, candidate.suffix) {
				column = strings.TrimSuffix(key, candidate.suffix)
				operator = candidate.operator
				break
			}
		}
		if !stringutils.IsSafeIdentifier(column) {
			return nil, fmt.Errorf("invalid filter column: %s", column)
		}
		filters = append(filters, Filter{Column: column, Operator: operator, Value: params.Get(key)})
	}
	return filters, nil
}

// EntityService builds and runs the dynamic CRUD statements behind the
// per-table endpoints. Table names are validated by the caller against the
// catalog; identifiers are re-checked here before interpolation.
type EntityService struct {
	db *gorm.DB
}

func NewEntityService(db *gorm.DB) *EntityService {
	return &EntityService{db: db}
}

func qualifiedTable(table string) string {
	return catalog.SchemaName() + "." + table
}

func validateSelect(selectClause string) error {
	if selectClause == "*" {
		return nil
	}
	for _, column := range strings.Split(selectClause, ",") {
		if !stringutils.IsSafeIdentifier(strings.TrimSpace(column)) {
			return fmt.Errorf("invalid select column: %s", strings.TrimSpace(column))
		}
	}
	return nil
}

func validateOrder(orderClause string) error {
	for _, field := range strings.Split(orderClause, ",") {
		parts := strings.Fields(field)
		if len(parts) == 0 || len(parts) > 2 {
			return fmt.Errorf("invalid order field: %s", field)
		}
		if !stringutils.IsSafeIdentifier(parts[0]) {
			return fmt.Errorf("invalid order column: %s", parts[0])
		}
		if len(parts) == 2 {
			direction := strings.ToLower(parts[1])
			if direction != "asc" && direction != "desc" {
				return fmt.Errorf("invalid order direction: %s", parts[1])
			}
		}
	}
	return nil
}

// buildWhere translates filters into a conjunction with named binds. Bind
// names carry the filter index; two filters on the same column (a range,
// say) must not share a bind.
func buildWhere(filters []Filter) (string, map[string]any) {
	clauses := make([]string, 0, len(filters))
	params := make(map[string]any, len(filters)+2)
	for i, filter := range filters {
		bind := fmt.Sprintf("%s_%d", filter.Column, i)
		clauses = append(clauses, fmt.Sprintf("%s %s @%s", filter.Column, filter.Operator, bind))
		params[bind] = filter.Value
	}
	return strings.Join(clauses, " AND "), params
}

// List reads rows with optional projection, filtering, ordering and paging,
// and reports pagination totals alongside the data.
func (s *EntityService) List(ctx context.Context, table string, q ListQuery) (*Page, error) {
	selectClause := q.Select
	if selectClause == "" {
		selectClause = "*"
	}
	if err := validateSelect(selectClause); err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	baseQuery := fmt.Sprintf("SELECT %s FROM %s", selectClause, qualifiedTable(table))
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", qualifiedTable(table))
	where, params := buildWhere(q.Filters)
	if where != "" {
		baseQuery += " WHERE " + where
		countQuery += " WHERE " + where
	}
	if q.Order != "" {
		if err := validateOrder(q.Order); err != nil {
			return nil, err
		}
		baseQuery += " ORDER BY " + q.Order
	}
	baseQuery += " LIMIT @limit OFFSET @offset"
	params["limit"] = q.Limit
	params["offset"] = q.Offset

	data := []map[string]any{}
	if err := s.db.WithContext(ctx).Raw(baseQuery, params).Scan(&data).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.db.WithContext(ctx).Raw(countQuery, params).Scan(&total).Error; err != nil {
		return nil, err
	}

	return &Page{
		TotalRows:   total,
		TotalPages:  int64(math.Ceil(float64(total) / float64(q.Limit))),
		Limit:       q.Limit,
		Offset:      q.Offset,
		CurrentPage: int64(math.Ceil(float64(q.Offset)/float64(q.Limit))) + 1,
		Data:        data,
	}, nil
}

// GetByID fetches a single row by its id column.
func (s *EntityService) GetByID(ctx context.Context, table string, id string) (map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = @id", qualifiedTable(table))
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Raw(query, map[string]any{"id": id}).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Create inserts a row built from the given column values and returns it.
func (s *EntityService) Create(ctx context.Context, table string, values map[string]any) (map[string]any, error) {
	columns, params, err := sortedColumns(values)
	if err != nil {
		return nil, err
	}
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		placeholders[i] = "@" + column
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		qualifiedTable(table),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Raw(query, params).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("failed to create record")
	}
	return rows[0], nil
}

// Update applies the given column values to the row with the matching id
// and returns the updated row. PATCH and PUT share this statement shape.
func (s *EntityService) Update(ctx context.Context, table string, id string, values map[string]any) (map[string]any, error) {
	exists, err := s.rowExists(ctx, table, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	columns, params, err := sortedColumns(values)
	if err != nil {
		return nil, err
	}
	setClauses := make([]string, len(columns))
	for i, column := range columns {
		setClauses[i] = fmt.Sprintf("%s = @%s", column, column)
	}
	params["id"] = id
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = @id RETURNING *",
		qualifiedTable(table),
		strings.Join(setClauses, ", "),
	)
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Raw(query, params).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to update record [%s] in [%s]", id, table)
	}
	return rows[0], nil
}

// Delete removes the row with the matching id.
func (s *EntityService) Delete(ctx context.Context, table string, id string) error {
	exists, err := s.rowExists(ctx, table, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = @id", qualifiedTable(table))
	return s.db.WithContext(ctx).Exec(query, map[string]any{"id": id}).Error
}

func (s *EntityService) rowExists(ctx context.Context, table string, id string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = @id)", qualifiedTable(table))
	var exists bool
	if err := s.db.WithContext(ctx).Raw(query, map[string]any{"id": id}).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

// sortedColumns validates the body's column names and returns them in a
// deterministic order alongside a named-bind map.
func sortedColumns(values map[string]any) ([]string, map[string]any, error) {
	if len(values) == 0 {
		return nil, nil, errors.New("request body must contain at least one column")
	}
	columns := make([]string, 0, len(values))
	params := make(map[string]any, len(values)+1)
	for column, value := range values {
		if !stringutils.IsSafeIdentifier(column) {
			return nil, nil, fmt.Errorf("invalid column name: %s", column)
		}
		columns = append(columns, column)
		params[column] = value
	}
	sort.Strings(columns)
	return columns, params, nil
}
