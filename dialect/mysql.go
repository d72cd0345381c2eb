package dialect

import (
	"errors"
	"strings"
)

type mysqlDialect struct{}

func (mysqlDialect) Tag() Tag {
	return MySQL
}

func (mysqlDialect) SupportsSimilarity() bool {
	return false
}

func (mysqlDialect) QuoteIdent(name string) string {
	return quoteWith(name, "`")
}

func (mysqlDialect) Placeholder(int) string {
	return "?"
}

func (mysqlDialect) CastText(expr string) string {
	return "CAST(" + expr + " AS CHAR)"
}

func (d mysqlDialect) ConcatText(exprs []string) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = "COALESCE(" + d.CastText(expr) + ", '')"
	}
	return "CONCAT_WS(' ', " + strings.Join(parts, ", ") + ")"
}

// EnumEquals compares binary strings in the case-sensitive path; the default
// MySQL collations are case-insensitive.
func (d mysqlDialect) EnumEquals(column string, placeholder string, caseSensitive bool) string {
	if caseSensitive {
		return "CAST(" + column + " AS BINARY) = CAST(" + placeholder + " AS BINARY)"
	}
	return "UPPER(" + d.CastText(column) + ") = UPPER(" + placeholder + ")"
}

func (mysqlDialect) Similarity(string, string, float64) (string, error) {
	return "", errors.New("mysql does not support similarity search")
}
