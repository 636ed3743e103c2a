// Package query builds the dynamic SQL used to list tasks. It is shared by
// every SQL store; each store supplies its own bind placeholder style.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msomdec/task-tracker/internal/domain"
)

// Placeholder renders the bind marker for the n-th (1-based) argument.
type Placeholder func(n int) string

// Question renders SQLite style markers.
func Question(int) string { return "?" }

// Dollar renders PostgreSQL style markers.
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// TaskColumns is the column list every task query selects, in scan order.
const TaskColumns = "id, name, description, author, status, created_at, project_id"

// sortColumns maps the public field names accepted by sortBy to columns.
var sortColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"author":      "author",
	"status":      "status",
	"createdAt":   "created_at",
	"projectId":   "project_id",
}

// SortColumn returns the column for a sortBy field name.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

// Tasks builds the SELECT for a task listing. Only the filter fields that
// are set become conditions, always in the order author, status,
// projectId, createdAt. Sorting is ascending only for sortDir "asc".
func Tasks(f domain.TaskFilter, ph Placeholder) (string, []any, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, col+" = "+ph(len(args)))
	}

	if f.Author != "" {
		add("author", f.Author)
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}
	if f.ProjectID != nil {
		add("project_id", *f.ProjectID)
	}
	if f.CreatedAt != nil {
		add("created_at", f.CreatedAt.UTC())
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(TaskColumns)
	b.WriteString(" FROM tasks")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	if f.SortBy != "" {
		col, ok := SortColumn(f.SortBy)
		if !ok {
			return "", nil, fmt.Errorf("%w: cannot sort by %q", domain.ErrInvalidInput, f.SortBy)
		}
		dir := "DESC"
		if f.SortDir == domain.SortDirAsc {
			dir = "ASC"
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(col)
		b.WriteString(" ")
		b.WriteString(dir)
	}

	return b.String(), args, nil
}
