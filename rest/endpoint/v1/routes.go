package endpoint

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"

	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/db"
	"github.com/datastax/data-api-query/log"
	"github.com/datastax/data-api-query/query"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

// Path formats of the v1 routes, relative to the REST prefix.
const (
	ResourcesPathFormat = "/v1/resources"
	RowsPathFormat      = "/v1/resources/%s/rows"
	RowSinglePathFormat = "/v1/resources/%s/rows/%s"
	StatsPathFormat     = "/v1/stats"
)

type routeList struct {
	dbClient *db.Db
	registry *schema.Registry
	compiler *query.Compiler
	logger   log.Logger
	params   func(*http.Request, string) string
}

// Routes returns a slice of all the endpoint routes
func Routes(prefix string, cfg config.Config, registry *schema.Registry, compiler *query.Compiler, dbClient *db.Db) []types.Route {
	rl := routeList{
		dbClient: dbClient,
		registry: registry,
		compiler: compiler,
		logger:   cfg.Logger(),
		params:   httpRouterParams,
	}

	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, ResourcesPathFormat),
			Handler: http.HandlerFunc(rl.GetResources),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, "/v1/resources/:resourceName/rows"),
			Handler: http.HandlerFunc(rl.GetRows),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, "/v1/resources/:resourceName/rows/:rowIdentifier"),
			Handler: http.HandlerFunc(rl.GetRow),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, StatsPathFormat),
			Handler: http.HandlerFunc(rl.GetStats),
		},
	}
}

func httpRouterParams(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
