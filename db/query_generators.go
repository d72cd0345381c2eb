package db

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/dialect"
	"github.com/datastax/data-api-query/types"
)

type SelectInfo struct {
	Table   string
	Columns []string
	Where   condition.Condition
	OrderBy types.SortSpec
	Page    types.PageSpec
}

type CountInfo struct {
	Table string
	Where condition.Condition
}

func (db *Db) Select(ctx context.Context, info *SelectInfo) (ResultSet, error) {
	query, values, err := buildSelect(db.dialect, info)
	if err != nil {
		return nil, err
	}
	return db.session.ExecuteIter(ctx, query, values...)
}

// Count returns the number of rows matching the condition, ignoring pagination.
func (db *Db) Count(ctx context.Context, info *CountInfo) (uint64, error) {
	query, values, err := buildCount(db.dialect, info)
	if err != nil {
		return 0, err
	}

	result, err := db.session.ExecuteIter(ctx, query, values...)
	if err != nil {
		return 0, err
	}

	rows := result.Values()
	if len(rows) != 1 {
		return 0, fmt.Errorf("count returned %d rows", len(rows))
	}
	return toCount(rows[0]["count"])
}

func buildSelect(d dialect.Dialect, info *SelectInfo) (string, []interface{}, error) {
	if len(info.Columns) == 0 {
		return "", nil, fmt.Errorf("no columns selected from %s", info.Table)
	}

	b := dialect.NewBuilder(d)
	whereClause, err := b.Condition(info.Where)
	if err != nil {
		return "", nil, err
	}

	columns := make([]string, len(info.Columns))
	for i, column := range info.Columns {
		columns[i] = b.Ident(column)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(columns, ", "), b.Ident(info.Table), whereClause)

	if info.OrderBy.Column != "" {
		query += " " + b.OrderBy(info.OrderBy)
	}

	query += " " + b.LimitOffset(clampPage(info.Page))
	return query, b.Args(), nil
}

func buildCount(d dialect.Dialect, info *CountInfo) (string, []interface{}, error) {
	b := dialect.NewBuilder(d)
	whereClause, err := b.Condition(info.Where)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("SELECT COUNT(*) AS %s FROM %s WHERE %s", b.Ident("count"), b.Ident(info.Table), whereClause)
	return query, b.Args(), nil
}

// clampPage keeps limit and offset within the range of a signed 64-bit
// parameter accepted by every driver.
func clampPage(page types.PageSpec) types.PageSpec {
	if page.Limit > math.MaxInt64 {
		page.Limit = math.MaxInt64
	}
	if page.Offset > math.MaxInt64 {
		page.Offset = math.MaxInt64
	}
	return page
}

func toCount(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative count %d", v)
		}
		return uint64(v), nil
	case int32:
		return uint64(v), nil
	case float64:
		return uint64(v), nil
	case string:
		var n uint64
		if _, err := fmt.Sscan(v, &n); err != nil {
			return 0, fmt.Errorf("unexpected count value %q", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("unexpected count type %T", value)
}
