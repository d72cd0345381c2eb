package dialect

import (
	"strconv"
	"strings"
)

// postgresDialect targets PostgreSQL with the pg_trgm extension.
type postgresDialect struct{}

func (postgresDialect) Tag() Tag {
	return Postgres
}

func (postgresDialect) SupportsSimilarity() bool {
	return true
}

func (postgresDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`)
}

func (postgresDialect) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (postgresDialect) CastText(expr string) string {
	return "CAST(" + expr + " AS TEXT)"
}

func (d postgresDialect) ConcatText(exprs []string) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = "COALESCE(" + d.CastText(expr) + ", '')"
	}
	return strings.Join(parts, " || ' ' || ")
}

func (d postgresDialect) EnumEquals(column string, placeholder string, caseSensitive bool) string {
	if caseSensitive {
		return d.CastText(column) + " = " + placeholder
	}
	return "UPPER(" + d.CastText(column) + ") = UPPER(" + placeholder + ")"
}

func (postgresDialect) Similarity(expr string, placeholder string, threshold float64) (string, error) {
	return "similarity(" + expr + ", " + placeholder + ") > " + strconv.FormatFloat(threshold, 'f', -1, 64), nil
}
