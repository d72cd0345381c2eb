package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/datastax/data-api-query/dialect"
)

const pingTimeout = 5 * time.Second

var drivers = map[dialect.Tag]string{
	dialect.Postgres: "pgx",
	dialect.SQLite:   "sqlite3",
}

// Db represents a connection to a db
type Db struct {
	session Session
	dialect dialect.Dialect
}

// NewDb opens a connection pool for the dialect and checks it is reachable.
func NewDb(d dialect.Dialect, dsn string) (*Db, error) {
	driver, ok := drivers[d.Tag()]
	if !ok {
		return nil, fmt.Errorf("no database driver available for dialect %s", d.Tag())
	}

	ref, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := ref.PingContext(ctx); err != nil {
		_ = ref.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewDbWithSession(NewSqlSession(ref), d), nil
}

func NewDbWithSession(session Session, d dialect.Dialect) *Db {
	return &Db{
		session: session,
		dialect: d,
	}
}

func NewDbWithConnection(ref *sql.DB, d dialect.Dialect) *Db {
	return NewDbWithSession(NewSqlSession(ref), d)
}

func (db *Db) Dialect() dialect.Dialect {
	return db.dialect
}

func (db *Db) Close() error {
	return db.session.Close()
}
