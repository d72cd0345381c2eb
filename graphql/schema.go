package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/db"
	"github.com/datastax/data-api-query/log"
	"github.com/datastax/data-api-query/query"
	"github.com/datastax/data-api-query/schema"
)

const statsFieldName = "stats"

// SchemaGenerator builds the GraphQL schema exposing one list field per
// registered resource.
type SchemaGenerator struct {
	dbClient *db.Db
	registry *schema.Registry
	compiler *query.Compiler
	naming   config.NamingConvention
	logger   log.Logger
}

func NewSchemaGenerator(dbClient *db.Db, registry *schema.Registry, compiler *query.Compiler, cfg config.Config) *SchemaGenerator {
	return &SchemaGenerator{
		dbClient: dbClient,
		registry: registry,
		compiler: compiler,
		naming:   cfg.Naming()(),
		logger:   cfg.Logger(),
	}
}

var statsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CompilerStats",
	Fields: graphql.Fields{
		"compiled":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"droppedClauses": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"searches":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"invalidFilters": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

func buildListArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"filter":  &graphql.ArgumentConfig{Type: graphql.String, Description: "JSON filter object"},
		"sort":    &graphql.ArgumentConfig{Type: graphql.String, Description: `JSON sort tuple ["column","ASC|DESC"]`},
		"sortBy":  &graphql.ArgumentConfig{Type: graphql.String},
		"order":   &graphql.ArgumentConfig{Type: graphql.String},
		"range":   &graphql.ArgumentConfig{Type: graphql.String, Description: "JSON inclusive range [start,end]"},
		"page":    &graphql.ArgumentConfig{Type: graphql.Int},
		"perPage": &graphql.ArgumentConfig{Type: graphql.Int},
	}
}

func buildResultType(typeName string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: typeName + "Result",
		Fields: graphql.Fields{
			"total": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"rows":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(jsonScalar))},
		},
	})
}

func (sg *SchemaGenerator) buildQueryFields() (graphql.Fields, error) {
	fields := graphql.Fields{}
	for _, name := range sg.registry.Names() {
		desc, _ := sg.registry.Lookup(name)
		fieldName := sg.naming.ToGraphQLField(name)
		if _, exists := fields[fieldName]; exists || fieldName == statsFieldName {
			return nil, fmt.Errorf("resource %s maps to duplicate graphql field %s", name, fieldName)
		}

		fields[fieldName] = &graphql.Field{
			Type:    buildResultType(sg.naming.ToGraphQLType(name)),
			Args:    buildListArgs(),
			Resolve: sg.queryFieldResolver(desc),
		}
	}

	fields[statsFieldName] = &graphql.Field{
		Type: statsType,
		Resolve: func(params graphql.ResolveParams) (interface{}, error) {
			stats := sg.compiler.Stats()
			return map[string]interface{}{
				"compiled":       float64(stats.Compiled),
				"droppedClauses": float64(stats.DroppedClauses),
				"searches":       float64(stats.Searches),
				"invalidFilters": float64(stats.InvalidFilters),
			}, nil
		},
	}
	return fields, nil
}

// BuildSchema builds the GraphQL schema for the registered resources.
func (sg *SchemaGenerator) BuildSchema() (graphql.Schema, error) {
	fields, err := sg.buildQueryFields()
	if err != nil {
		return graphql.Schema{}, err
	}

	return graphql.NewSchema(
		graphql.SchemaConfig{
			Query: graphql.NewObject(graphql.ObjectConfig{
				Name:   "ResourceQuery",
				Fields: fields,
			}),
		})
}
