package postgres

import (
	"fmt"
	"strings"

	"news-agency/internal/repository"
)

// ArticleQueryBuilder builds WHERE clauses for the filtered article listing.
// It uses numbered placeholders ($1, $2, ...).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause returns an empty clause when no filter is set.
// Conditions are always emitted in region, language, status order.
func (qb *ArticleQueryBuilder) BuildWhereClause(filters repository.ArticleFilters) (clause string, args []interface{}) {
	if filters.IsEmpty() {
		return "", nil
	}

	var conditions []string
	paramIndex := 1

	add := func(col string, v interface{}) {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", col, paramIndex))
		args = append(args, v)
		paramIndex++
	}

	if filters.Region != "" {
		add("region", filters.Region)
	}
	if filters.Language != "" {
		add("language", filters.Language)
	}
	if filters.Status != "" {
		add("status", string(filters.Status))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// EscapeILIKE escapes the ILIKE wildcards in a user supplied keyword.
func EscapeILIKE(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
