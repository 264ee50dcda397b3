package sqlparse

import (
	"fmt"

	"github.com/xwb1989/sqlparser"
)

// SQLParseService offers SQL rewriting and analysis over a parsed AST. It
// never executes anything.
type SQLParseService struct{}

func NewSQLParseService() *SQLParseService {
	return &SQLParseService{}
}

func parse(sql string) (sqlparser.Statement, error) {
	if sql == "" {
		return nil, fmt.Errorf("no sql provided")
	}
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("unable to parse sql: %w", err)
	}
	return stmt, nil
}

// quoteIdentifiers re-emits every column and table identifier wrapped in
// double quotes, leaving the rest of the statement to the default renderer.
func quoteIdentifiers(buf *sqlparser.TrackedBuffer, node sqlparser.SQLNode) {
	switch ident := node.(type) {
	case sqlparser.ColIdent:
		buf.WriteString("\"" + ident.String() + "\"")
	case sqlparser.TableIdent:
		buf.WriteString("\"" + ident.String() + "\"")
	default:
		node.Format(buf)
	}
}

// Transpile parses the statement and re-emits it with quoted identifiers,
// the portable form analytical engines agree on.
func (s *SQLParseService) Transpile(sql string) (string, error) {
	stmt, err := parse(sql)
	if err != nil {
		return "", err
	}
	buf := sqlparser.NewTrackedBuffer(quoteIdentifiers)
	stmt.Format(buf)
	return buf.String(), nil
}

// Prettify re-renders the statement in its canonical form.
func (s *SQLParseService) Prettify(sql string) (string, error) {
	stmt, err := parse(sql)
	if err != nil {
		return "", err
	}
	return sqlparser.String(stmt), nil
}

// ExtractColumns lists every column referenced by the statement, in the
// order the AST walks them.
func (s *SQLParseService) ExtractColumns(sql string) ([]string, error) {
	stmt, err := parse(sql)
	if err != nil {
		return nil, err
	}
	columns := []string{}
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		if col, ok := node.(*sqlparser.ColName); ok {
			columns = append(columns, col.Name.String())
		}
		return true, nil
	}, stmt)
	return columns, nil
}

// ExtractTables lists the tables the statement reads from, subqueries
// included.
func (s *SQLParseService) ExtractTables(sql string) ([]string, error) {
	stmt, err := parse(sql)
	if err != nil {
		return nil, err
	}
	tables := []string{}
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		if aliased, ok := node.(*sqlparser.AliasedTableExpr); ok {
			if name, ok := aliased.Expr.(sqlparser.TableName); ok {
				tables = append(tables, name.Name.String())
			}
		}
		return true, nil
	}, stmt)
	return tables, nil
}

// ExtractProjections lists the SELECT-list names of every SELECT in the
// statement, star expressions included.
func (s *SQLParseService) ExtractProjections(sql string) ([]string, error) {
	stmt, err := parse(sql)
	if err != nil {
		return nil, err
	}
	projections := []string{}
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		sel, ok := node.(*sqlparser.Select)
		if !ok {
			return true, nil
		}
		for _, expr := range sel.SelectExprs {
			switch e := expr.(type) {
			case *sqlparser.StarExpr:
				projections = append(projections, "*")
			case *sqlparser.AliasedExpr:
				switch {
				case !e.As.IsEmpty():
					projections = append(projections, e.As.String())
				default:
					if col, ok := e.Expr.(*sqlparser.ColName); ok {
						projections = append(projections, col.Name.String())
					} else {
						projections = append(projections, sqlparser.String(e.Expr))
					}
				}
			}
		}
		return true, nil
	}, stmt)
	return projections, nil
}
