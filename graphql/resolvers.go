package graphql

import (
	"errors"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/mitchellh/mapstructure"

	"github.com/datastax/data-api-query/db"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

// listArgs mirrors the REST query parameters of a list request.
type listArgs struct {
	Filter  string `mapstructure:"filter"`
	Sort    string `mapstructure:"sort"`
	SortBy  string `mapstructure:"sortBy"`
	Order   string `mapstructure:"order"`
	Range   string `mapstructure:"range"`
	Page    *int   `mapstructure:"page"`
	PerPage *int   `mapstructure:"perPage"`
}

func (a listArgs) pageParams() types.PageParams {
	params := types.PageParams{Range: a.Range}
	if a.Page != nil {
		params.Page = strconv.Itoa(*a.Page)
	}
	if a.PerPage != nil {
		params.PerPage = strconv.Itoa(*a.PerPage)
	}
	return params
}

func (a listArgs) sortParams() types.SortParams {
	return types.SortParams{Sort: a.Sort, SortBy: a.SortBy, Order: a.Order}
}

func (sg *SchemaGenerator) queryFieldResolver(desc *schema.Descriptor) graphql.FieldResolveFn {
	return func(params graphql.ResolveParams) (interface{}, error) {
		var args listArgs
		if err := mapstructure.Decode(params.Args, &args); err != nil {
			return nil, err
		}

		d := sg.dbClient.Dialect()
		where := sg.compiler.CompileFilter(args.Filter, desc, d)
		info := &db.SelectInfo{
			Table:   desc.Table(),
			Columns: desc.Columns(),
			Where:   where,
			OrderBy: sg.compiler.ResolveSort(args.sortParams(), desc, ""),
			Page:    sg.compiler.ResolvePagination(args.pageParams()),
		}

		result, err := sg.dbClient.Select(params.Context, info)
		if err != nil {
			sg.logger.Error("unable to select rows", "resource", desc.Name(), "error", err)
			return nil, errors.New("unable to select rows")
		}

		total, err := sg.dbClient.Count(params.Context, &db.CountInfo{Table: desc.Table(), Where: where})
		if err != nil {
			sg.logger.Error("unable to count rows", "resource", desc.Name(), "error", err)
			return nil, errors.New("unable to count rows")
		}

		return map[string]interface{}{
			"total": float64(total),
			"rows":  adaptResult(desc, result.Values()),
		}, nil
	}
}

// adaptResult normalizes driver values of each row to their JSON form.
func adaptResult(desc *schema.Descriptor, values []map[string]interface{}) []interface{} {
	rows := make([]interface{}, 0, len(values))
	for _, row := range values {
		adapted := make(map[string]interface{}, len(row))
		for column, value := range row {
			caps, _ := desc.Capabilities(column)
			adapted[column] = schema.ToJSONValue(caps.Kind, value)
		}
		rows = append(rows, adapted)
	}
	return rows
}
