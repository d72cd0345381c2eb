// Package dialect lowers condition trees into parameterized SQL for a
// specific relational backend.
//
// All quoting, LIKE escaping and parameter placeholders are produced here.
// Callers never concatenate request data into SQL: string literals reach the
// database only as bound arguments.
package dialect

import (
	"fmt"
	"strings"
)

type Tag string

const (
	Postgres Tag = "postgres"
	SQLite   Tag = "sqlite"
	MySQL    Tag = "mysql"
)

// Dialect holds the query-construction rules of one backend.
type Dialect interface {
	Tag() Tag

	// SupportsSimilarity reports whether fuzzy text similarity (condition.Similar) can be lowered.
	SupportsSimilarity() bool

	QuoteIdent(name string) string
	// Placeholder returns the marker of the n-th (1-based) bound argument.
	Placeholder(n int) string

	CastText(expr string) string
	ConcatText(exprs []string) string
	EnumEquals(column string, placeholder string, caseSensitive bool) string
	Similarity(expr string, placeholder string, threshold float64) (string, error)
}

// Lookup returns the dialect registered under name. Common aliases are accepted.
func Lookup(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg", "pgx":
		return postgresDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	case "mysql", "mariadb":
		return mysqlDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported dialect: %q", name)
}

func NewPostgres() Dialect {
	return postgresDialect{}
}

func NewSQLite() Dialect {
	return sqliteDialect{}
}

func NewMySQL() Dialect {
	return mysqlDialect{}
}

// quoteWith doubles every occurrence of quote inside name and wraps it.
func quoteWith(name string, quote string) string {
	return quote + strings.Replace(name, quote, quote+quote, -1) + quote
}

// likeEscape is the escape character declared on every LIKE produced by the builder.
const likeEscape = "!"

// ContainsPattern turns a literal into a LIKE pattern matching it anywhere
// in a string. Wildcards and the escape character match literally.
func ContainsPattern(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('%')
	for _, r := range value {
		switch r {
		case '%', '_', '!':
			b.WriteString(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
