package dialect

import (
	"errors"
	"strings"
)

type sqliteDialect struct{}

func (sqliteDialect) Tag() Tag {
	return SQLite
}

func (sqliteDialect) SupportsSimilarity() bool {
	return false
}

func (sqliteDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`)
}

func (sqliteDialect) Placeholder(int) string {
	return "?"
}

func (sqliteDialect) CastText(expr string) string {
	return "CAST(" + expr + " AS TEXT)"
}

func (d sqliteDialect) ConcatText(exprs []string) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = "COALESCE(" + d.CastText(expr) + ", '')"
	}
	return strings.Join(parts, " || ' ' || ")
}

// EnumEquals compares with BINARY collation in the case-sensitive path so a
// NOCASE column collation cannot relax the match.
func (d sqliteDialect) EnumEquals(column string, placeholder string, caseSensitive bool) string {
	if caseSensitive {
		return d.CastText(column) + " = " + placeholder + " COLLATE BINARY"
	}
	return "UPPER(" + d.CastText(column) + ") = UPPER(" + placeholder + ")"
}

func (sqliteDialect) Similarity(string, string, float64) (string, error) {
	return "", errors.New("sqlite does not support similarity search")
}
