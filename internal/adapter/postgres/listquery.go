package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// ListQuery builds the filtered, sorted and paginated SELECT plus its COUNT
// twin for one catalog table. The repositories own the table name, column
// list and sort whitelist; the visibility scoping rule is shared:
//
//   - IsCustom unset  yields defaults plus the caller's customs;
//   - IsCustom=false  yields defaults only, UserID is irrelevant;
//   - IsCustom=true   yields only the caller's customs.
type ListQuery struct {
	Table   string
	Columns []string

	// SortWhitelist maps API sort field names to column names.
	SortWhitelist map[string]string

	// DefaultSort is the API field used when the filter names none.
	DefaultSort string
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Build returns the page SELECT for the filter plus extra domain-specific
// predicates (needs_equipment, taxonomy ids).
func (q ListQuery) Build(f domain.ListFilter, extra ...sq.Sqlizer) (string, []any, error) {
	b := psql.Select(q.Columns...).From(q.Table).Where(q.visibility(f))

	for _, p := range q.predicates(f, extra) {
		b = b.Where(p)
	}

	col, err := q.sortColumn(f.SortBy)
	if err != nil {
		return "", nil, err
	}
	order := "ASC"
	if f.SortOrder == "DESC" {
		order = "DESC"
	}

	f = f.Normalized()
	b = b.OrderBy(col + " " + order + ", id ASC").
		Limit(uint64(f.PageSize)).
		Offset(uint64(f.PageNumber * f.PageSize))

	return b.ToSql()
}

// BuildCount returns the matching COUNT(*) query, ignoring sort and paging.
func (q ListQuery) BuildCount(f domain.ListFilter, extra ...sq.Sqlizer) (string, []any, error) {
	b := psql.Select("count(*)").From(q.Table).Where(q.visibility(f))
	for _, p := range q.predicates(f, extra) {
		b = b.Where(p)
	}
	return b.ToSql()
}

func (q ListQuery) visibility(f domain.ListFilter) sq.Sqlizer {
	switch {
	case f.IsCustom == nil:
		return sq.Or{
			sq.Eq{"is_custom": false},
			sq.Eq{"user_id": f.UserID},
		}
	case *f.IsCustom:
		return sq.And{
			sq.Eq{"is_custom": true},
			sq.Eq{"user_id": f.UserID},
		}
	default:
		return sq.Eq{"is_custom": false}
	}
}

func (q ListQuery) predicates(f domain.ListFilter, extra []sq.Sqlizer) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if f.Name != nil && *f.Name != "" {
		preds = append(preds, sq.ILike{q.nameColumn(): "%" + *f.Name + "%"})
	}
	if f.Description != nil && *f.Description != "" {
		preds = append(preds, sq.ILike{"description": "%" + *f.Description + "%"})
	}
	preds = append(preds, extra...)
	return preds
}

// nameColumn resolves the name/title column from the sort whitelist so
// exercise tables (title) and httpref tables (name) share one builder.
func (q ListQuery) nameColumn() string {
	if col, ok := q.SortWhitelist["title"]; ok {
		return col
	}
	if col, ok := q.SortWhitelist["name"]; ok {
		return col
	}
	return "name"
}

func (q ListQuery) sortColumn(field string) (string, error) {
	if field == "" {
		field = q.DefaultSort
	}
	col, ok := q.SortWhitelist[field]
	if !ok {
		return "", fmt.Errorf("sort field %q: %w", field, domain.ErrValidation)
	}
	return col, nil
}
