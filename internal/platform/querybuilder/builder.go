// Package querybuilder assembles PostgreSQL statements with positional
// $n placeholders. It covers the query shapes the repositories need and
// is not a general SQL DSL.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// stmt accumulates SQL text and its bound arguments.
type stmt struct {
	sql  strings.Builder
	args []any
}

// bind registers v as the next argument and returns its placeholder.
func (s *stmt) bind(v any) string {
	s.args = append(s.args, v)
	return "$" + strconv.Itoa(len(s.args))
}

// Condition writes one predicate of a WHERE clause.
type Condition func(s *stmt)

func Eq(column string, value any) Condition {
	return func(s *stmt) {
		s.sql.WriteString(column)
		s.sql.WriteString(" = ")
		s.sql.WriteString(s.bind(value))
	}
}

// In matches any of the given values. An empty value set produces a
// predicate that matches no rows.
func In(column string, values []any) Condition {
	return func(s *stmt) {
		if len(values) == 0 {
			s.sql.WriteString("FALSE")
			return
		}
		s.sql.WriteString(column)
		s.sql.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				s.sql.WriteString(", ")
			}
			s.sql.WriteString(s.bind(v))
		}
		s.sql.WriteString(")")
	}
}

func IsNull(column string) Condition {
	return func(s *stmt) {
		s.sql.WriteString(column)
		s.sql.WriteString(" IS NULL")
	}
}

func writeWhere(s *stmt, conds []Condition) {
	if len(conds) == 0 {
		return
	}
	s.sql.WriteString(" WHERE ")
	for i, cond := range conds {
		if i > 0 {
			s.sql.WriteString(" AND ")
		}
		cond(s)
	}
}

// SelectQuery builds a SELECT statement.
type SelectQuery struct {
	columns []string
	table   string
	conds   []Condition
	order   []string
	limit   int
}

func Select(columns ...string) *SelectQuery {
	return &SelectQuery{columns: append([]string(nil), columns...)}
}

func (q *SelectQuery) From(table string) *SelectQuery {
	q.table = table
	return q
}

func (q *SelectQuery) Where(conds ...Condition) *SelectQuery {
	q.conds = append(q.conds, conds...)
	return q
}

func (q *SelectQuery) OrderBy(columns ...string) *SelectQuery {
	q.order = append(q.order, columns...)
	return q
}

func (q *SelectQuery) Limit(n int) *SelectQuery {
	q.limit = n
	return q
}

func (q *SelectQuery) ToSQL() (string, []any, error) {
	if len(q.columns) == 0 {
		return "", nil, fmt.Errorf("select needs at least one column")
	}
	if strings.TrimSpace(q.table) == "" {
		return "", nil, fmt.Errorf("select needs a table")
	}

	var s stmt
	s.sql.WriteString("SELECT ")
	s.sql.WriteString(strings.Join(q.columns, ", "))
	s.sql.WriteString(" FROM ")
	s.sql.WriteString(q.table)
	writeWhere(&s, q.conds)
	if len(q.order) > 0 {
		s.sql.WriteString(" ORDER BY ")
		s.sql.WriteString(strings.Join(q.order, ", "))
	}
	if q.limit > 0 {
		s.sql.WriteString(" LIMIT ")
		s.sql.WriteString(strconv.Itoa(q.limit))
	}

	return s.sql.String(), s.args, nil
}

// assignment is one column of an UPDATE SET clause. Raw assignments
// carry a SQL expression verbatim instead of a bound value.
type assignment struct {
	column string
	value  any
	raw    string
}

// UpdateQuery builds an UPDATE statement.
type UpdateQuery struct {
	table string
	sets  []assignment
	conds []Condition
}

func Update(table string) *UpdateQuery {
	return &UpdateQuery{table: table}
}

func (q *UpdateQuery) Set(column string, value any) *UpdateQuery {
	q.sets = append(q.sets, assignment{column: column, value: value})
	return q
}

// SetExpr assigns a raw SQL expression, such as NOW().
func (q *UpdateQuery) SetExpr(column, expr string) *UpdateQuery {
	q.sets = append(q.sets, assignment{column: column, raw: expr})
	return q
}

func (q *UpdateQuery) Where(conds ...Condition) *UpdateQuery {
	q.conds = append(q.conds, conds...)
	return q
}

func (q *UpdateQuery) ToSQL() (string, []any, error) {
	if strings.TrimSpace(q.table) == "" {
		return "", nil, fmt.Errorf("update needs a table")
	}
	if len(q.sets) == 0 {
		return "", nil, fmt.Errorf("update needs at least one assignment")
	}

	var s stmt
	s.sql.WriteString("UPDATE ")
	s.sql.WriteString(q.table)
	s.sql.WriteString(" SET ")
	for i, set := range q.sets {
		if i > 0 {
			s.sql.WriteString(", ")
		}
		s.sql.WriteString(set.column)
		s.sql.WriteString(" = ")
		if set.raw != "" {
			s.sql.WriteString(set.raw)
			continue
		}
		s.sql.WriteString(s.bind(set.value))
	}
	writeWhere(&s, q.conds)

	return s.sql.String(), s.args, nil
}
