package dialect

import (
	"fmt"
	"strings"

	"github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/types"
)

// Builder lowers conditions into a SQL fragment and collects the bound
// arguments in placeholder order. A Builder is used for one statement.
type Builder struct {
	dialect Dialect
	args    []interface{}
}

func NewBuilder(d Dialect) *Builder {
	return &Builder{dialect: d}
}

// Lower is a shortcut for lowering a single condition.
func Lower(d Dialect, c condition.Condition) (string, []interface{}, error) {
	b := NewBuilder(d)
	sql, err := b.Condition(c)
	if err != nil {
		return "", nil, err
	}
	return sql, b.Args(), nil
}

func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Arg binds a value and returns its placeholder.
func (b *Builder) Arg(value interface{}) string {
	b.args = append(b.args, value)
	return b.dialect.Placeholder(len(b.args))
}

func (b *Builder) Args() []interface{} {
	return b.args
}

// Ident quotes an identifier.
func (b *Builder) Ident(name string) string {
	return b.dialect.QuoteIdent(name)
}

// Condition lowers c. A nil condition matches every row.
func (b *Builder) Condition(c condition.Condition) (string, error) {
	if c == nil {
		return "1 = 1", nil
	}

	switch c := c.(type) {
	case condition.True:
		return "1 = 1", nil
	case condition.False:
		return "1 = 0", nil
	case condition.And:
		return b.and(c)
	case condition.Or:
		return b.or(c)
	case condition.Compare:
		return b.compare(c)
	case condition.EqualFold:
		left, err := b.expr(c.Left)
		if err != nil {
			return "", err
		}
		return "UPPER(" + left + ") = UPPER(" + b.Arg(c.Value) + ")", nil
	case condition.EnumEquals:
		return b.dialect.EnumEquals(b.Ident(c.Column), b.Arg(c.Value), c.CaseSensitive), nil
	case condition.Contains:
		left, err := b.expr(c.Left)
		if err != nil {
			return "", err
		}
		return "UPPER(" + left + ") LIKE UPPER(" + b.Arg(ContainsPattern(c.Value)) + ") ESCAPE '" + likeEscape + "'", nil
	case condition.Similar:
		if !b.dialect.SupportsSimilarity() {
			return "", fmt.Errorf("%s: similarity search is not supported", b.dialect.Tag())
		}
		left, err := b.expr(c.Left)
		if err != nil {
			return "", err
		}
		return b.dialect.Similarity(left, b.Arg(c.Value), c.Threshold)
	case condition.IsNull:
		return b.Ident(c.Column) + " IS NULL", nil
	case condition.In:
		return b.in(c)
	default:
		return "", fmt.Errorf("unsupported condition type: %T", c)
	}
}

func (b *Builder) and(c condition.And) (string, error) {
	if len(c.Conditions) == 0 {
		return "1 = 1", nil
	}

	parts := make([]string, 0, len(c.Conditions))
	for _, child := range c.Conditions {
		sql, err := b.Condition(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return strings.Join(parts, " AND "), nil
}

func (b *Builder) or(c condition.Or) (string, error) {
	if len(c.Conditions) == 0 {
		return "1 = 0", nil
	}

	parts := make([]string, 0, len(c.Conditions))
	for _, child := range c.Conditions {
		sql, err := b.Condition(child)
		if err != nil {
			return "", err
		}
		if _, nested := child.(condition.And); nested {
			sql = "(" + sql + ")"
		}
		parts = append(parts, sql)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", nil
}

func (b *Builder) compare(c condition.Compare) (string, error) {
	if !c.Value.IsScalar() {
		return "", fmt.Errorf("cannot compare with %s value", c.Value.Kind)
	}
	left, err := b.expr(c.Left)
	if err != nil {
		return "", err
	}
	return left + " " + c.Operator.String() + " " + b.Arg(c.Value.Interface()), nil
}

func (b *Builder) in(c condition.In) (string, error) {
	if len(c.Values) == 0 {
		return "1 = 0", nil
	}

	left, err := b.expr(c.Left)
	if err != nil {
		return "", err
	}

	placeholders := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsScalar() {
			return "", fmt.Errorf("cannot use %s value in IN list", v.Kind)
		}
		placeholders = append(placeholders, b.Arg(v.Interface()))
	}
	return left + " IN (" + strings.Join(placeholders, ", ") + ")", nil
}

func (b *Builder) expr(e condition.Expr) (string, error) {
	switch e := e.(type) {
	case condition.Column:
		return b.column(e), nil
	case condition.Concat:
		if len(e.Columns) == 0 {
			return "", fmt.Errorf("empty concatenation")
		}
		exprs := make([]string, len(e.Columns))
		for i, col := range e.Columns {
			exprs[i] = b.Ident(col.Name)
		}
		return b.dialect.ConcatText(exprs), nil
	default:
		return "", fmt.Errorf("unsupported expression type: %T", e)
	}
}

func (b *Builder) column(c condition.Column) string {
	ident := b.Ident(c.Name)
	if c.AsText {
		return b.dialect.CastText(ident)
	}
	return ident
}

// OrderBy renders an ORDER BY clause for a sort spec.
func (b *Builder) OrderBy(sort types.SortSpec) string {
	return "ORDER BY " + b.Ident(sort.Column) + " " + sort.Direction.String()
}

// LimitOffset renders LIMIT/OFFSET with bound arguments.
func (b *Builder) LimitOffset(page types.PageSpec) string {
	return "LIMIT " + b.Arg(int64(page.Limit)) + " OFFSET " + b.Arg(int64(page.Offset))
}
