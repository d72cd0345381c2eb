package rest

import (
	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/db"
	"github.com/datastax/data-api-query/query"
	restEndpointV1 "github.com/datastax/data-api-query/rest/endpoint/v1"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

type RouteGenerator struct {
	dbClient *db.Db
	registry *schema.Registry
	compiler *query.Compiler
	config   config.Config
}

func NewRouteGenerator(
	dbClient *db.Db,
	registry *schema.Registry,
	compiler *query.Compiler,
	cfg config.Config,
) *RouteGenerator {
	return &RouteGenerator{
		dbClient: dbClient,
		registry: registry,
		compiler: compiler,
		config:   cfg,
	}
}

func (g *RouteGenerator) Routes(prefix string) []types.Route {
	return restEndpointV1.Routes(prefix, g.config, g.registry, g.compiler, g.dbClient)
}
