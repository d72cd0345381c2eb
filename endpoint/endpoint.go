package endpoint

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/db"
	"github.com/datastax/data-api-query/dialect"
	"github.com/datastax/data-api-query/graphql"
	"github.com/datastax/data-api-query/log"
	"github.com/datastax/data-api-query/query"
	"github.com/datastax/data-api-query/rest"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

type DataEndpointConfig struct {
	dialect   dialect.Dialect
	dsn       string
	limits    config.Limits
	naming    config.NamingConventionFn
	resources []schema.Definition
	logger    log.Logger
	notices   *log.Once
}

func (cfg DataEndpointConfig) Limits() config.Limits {
	return cfg.limits
}

func (cfg DataEndpointConfig) Naming() config.NamingConventionFn {
	return cfg.naming
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg DataEndpointConfig) Notices() *log.Once {
	return cfg.notices
}

func (cfg DataEndpointConfig) Resources() []schema.Definition {
	return cfg.resources
}

func (cfg *DataEndpointConfig) WithLimits(limits config.Limits) *DataEndpointConfig {
	cfg.limits = limits.OrDefault()
	return cfg
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConventionFn) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *DataEndpointConfig) WithResources(resources ...schema.Definition) *DataEndpointConfig {
	cfg.resources = append(cfg.resources, resources...)
	return cfg
}

func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	if err := cfg.limits.Validate(); err != nil {
		return nil, err
	}

	dbClient, err := db.NewDb(cfg.dialect, cfg.dsn)
	if err != nil {
		return nil, err
	}

	endpoint, err := cfg.newEndpointWithDb(dbClient)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}
	return endpoint, nil
}

func (cfg DataEndpointConfig) newEndpointWithDb(dbClient *db.Db) (*DataEndpoint, error) {
	if err := cfg.limits.Validate(); err != nil {
		return nil, err
	}

	registry := schema.NewRegistry(cfg.naming())
	for _, def := range cfg.resources {
		if _, err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("unable to register resource: %w", err)
		}
	}

	compiler := query.NewCompiler(cfg)
	return &DataEndpoint{
		dbClient:        dbClient,
		registry:        registry,
		compiler:        compiler,
		graphQLRouteGen: graphql.NewRouteGenerator(dbClient, registry, compiler, cfg),
		restRouteGen:    rest.NewRouteGenerator(dbClient, registry, compiler, cfg),
	}, nil
}

type DataEndpoint struct {
	dbClient        *db.Db
	registry        *schema.Registry
	compiler        *query.Compiler
	graphQLRouteGen *graphql.RouteGenerator
	restRouteGen    *rest.RouteGenerator
}

func NewEndpointConfig(d dialect.Dialect, dsn string) (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), d, dsn), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, d dialect.Dialect, dsn string) *DataEndpointConfig {
	return &DataEndpointConfig{
		dialect: d,
		dsn:     dsn,
		limits:  config.DefaultLimits(),
		naming:  config.NewDefaultNaming,
		logger:  logger,
		notices: log.NewOnce(),
	}
}

func (e *DataEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

func (e *DataEndpoint) RoutesRest(prefix string) []types.Route {
	return e.restRouteGen.Routes(prefix)
}

// Resources returns the names of the registered resources.
func (e *DataEndpoint) Resources() []string {
	return e.registry.Names()
}

func (e *DataEndpoint) Close() error {
	return e.dbClient.Close()
}
