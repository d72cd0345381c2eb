package db

import (
	"context"
	"database/sql"
)

type Session interface {
	// ExecuteIter executes a statement and returns the full result set
	ExecuteIter(ctx context.Context, query string, values ...interface{}) (ResultSet, error)

	Close() error
}

type ResultSet interface {
	Columns() []string
	Values() []map[string]interface{}
}

type sqlResultSet struct {
	columns []string
	values  []map[string]interface{}
}

func (r *sqlResultSet) Columns() []string {
	return r.columns
}

func (r *sqlResultSet) Values() []map[string]interface{} {
	return r.values
}

func newResultSet(rows *sql.Rows) (*sqlResultSet, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		row, err := mapScan(rows, columns)
		if err != nil {
			return nil, err
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &sqlResultSet{
		columns: columns,
		values:  items,
	}, nil
}

func mapScan(rows *sql.Rows, columns []string) (map[string]interface{}, error) {
	values := make([]interface{}, len(columns))
	for i := range values {
		values[i] = new(interface{})
	}

	if err := rows.Scan(values...); err != nil {
		return nil, err
	}

	mapped := make(map[string]interface{}, len(columns))
	for i, column := range columns {
		value := *(values[i].(*interface{}))
		// Drivers may return text as raw bytes that are only valid until the next scan
		if b, ok := value.([]byte); ok {
			value = string(b)
		}
		mapped[column] = value
	}

	return mapped, nil
}

type SqlSession struct {
	ref *sql.DB
}

func NewSqlSession(ref *sql.DB) *SqlSession {
	return &SqlSession{ref: ref}
}

func (session *SqlSession) ExecuteIter(ctx context.Context, query string, values ...interface{}) (ResultSet, error) {
	rows, err := session.ref.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	return newResultSet(rows)
}

func (session *SqlSession) Close() error {
	return session.ref.Close()
}
