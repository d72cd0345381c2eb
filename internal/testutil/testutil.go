package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/datastax/data-api-query/log"
)

// SetupIntegrationTestFixture opens a private in-memory SQLite database and
// runs the given statements against it.
func SetupIntegrationTestFixture(queries ...string) *sql.DB {
	db, err := sql.Open("sqlite3", MemoryDSN())
	PanicIfError(err)

	// Every connection to a shared-cache memory database sees the same data,
	// but keep a single one so the database lives as long as db.
	db.SetMaxOpenConns(1)

	for _, query := range queries {
		_, err := db.Exec(query)
		if err != nil {
			panic(fmt.Sprintf("executing %q: %s", query, err))
		}
	}

	return db
}

func TearDownIntegrationTestFixture(db *sql.DB) {
	if db != nil {
		PanicIfError(db.Close())
	}
}

// MemoryDSN returns a DSN for a new, uniquely named in-memory SQLite database.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log.NewZapLogger(logger)
	}

	return log.NewZapLogger(zap.NewNop())
}
