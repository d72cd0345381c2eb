// Package query compiles untrusted list-request parameters (a JSON filter
// object, sort and pagination) into a condition tree, a validated sort and a
// bounded page, using a resource's allow-list of columns.
//
// The compiler never fails on client input: anything it cannot use safely is
// dropped and logged.
package query

import (
	"encoding/json"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/datastax/data-api-query/config"
	c "github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/dialect"
	"github.com/datastax/data-api-query/log"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

// Request parameter names.
const (
	ParamFilter  = "filter"
	ParamSort    = "sort"
	ParamSortBy  = "sort_by"
	ParamOrder   = "order"
	ParamPage    = "page"
	ParamPerPage = "per_page"
	ParamRange   = "range"
)

// Query is a compiled list request.
type Query struct {
	Condition c.Condition
	Sort      types.SortSpec
	Page      types.PageSpec
}

// Compiler is safe for concurrent use.
type Compiler struct {
	limits  config.Limits
	logger  log.Logger
	notices *log.Once
	stats   *Stats
}

func NewCompiler(cfg config.Config) *Compiler {
	logger := cfg.Logger()
	if logger == nil {
		logger = log.NewNopLogger()
	}

	notices := cfg.Notices()
	if notices == nil {
		notices = log.NewOnce()
	}

	return &Compiler{
		limits:  cfg.Limits().OrDefault(),
		logger:  logger,
		notices: notices,
		stats:   &Stats{},
	}
}

func (q *Compiler) Stats() StatsSnapshot {
	return q.stats.Snapshot()
}

// CompileFilter compiles a JSON filter object into a condition. An empty or
// malformed filter matches every row. Each key is handled independently: a
// rejected key is dropped without affecting the others, and the surviving
// clauses are combined with AND.
func (q *Compiler) CompileFilter(raw string, desc *schema.Descriptor, d dialect.Dialect) c.Condition {
	q.stats.compiled.Inc()

	fields, ok := q.decodeFilter(raw, desc)
	if !ok {
		return c.True{}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var conditions []c.Condition
	if value, ok := fields[searchKey]; ok {
		if cond := q.search(desc, d, value); cond != nil {
			conditions = append(conditions, cond)
		}
	}

	for _, key := range keys {
		var cond c.Condition
		switch key {
		case searchKey:
			continue
		case idsKey:
			cond = q.buildIdentity(desc, fields[key])
		default:
			if clause, ok := q.parseClause(desc, key, fields[key]); ok {
				cond = q.buildCondition(desc, clause)
			}
		}

		if cond == nil {
			q.stats.dropped.Inc()
			continue
		}
		conditions = append(conditions, cond)
	}

	return c.Conjunction(conditions...)
}

// decodeFilter parses the filter as a single JSON object. A filter that is
// still percent-encoded is unescaped once.
func (q *Compiler) decodeFilter(raw string, desc *schema.Descriptor) (map[string]interface{}, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	fields, err := decodeObject(raw)
	if err != nil && strings.HasPrefix(raw, "%") {
		if unescaped, unescapeErr := url.QueryUnescape(raw); unescapeErr == nil {
			fields, err = decodeObject(unescaped)
		}
	}

	if err != nil {
		q.stats.invalid.Inc()
		q.logger.Debug("ignoring malformed filter", "resource", desc.Name(), "error", err)
		return nil, false
	}
	return fields, true
}

func decodeObject(raw string) (map[string]interface{}, error) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errNotAnObject
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return fields, nil
}

// Compile compiles the filter, sort and pagination parameters of a list
// request.
func (q *Compiler) Compile(params url.Values, desc *schema.Descriptor, d dialect.Dialect) *Query {
	return &Query{
		Condition: q.CompileFilter(params.Get(ParamFilter), desc, d),
		Sort:      q.ResolveSort(SortParamsFrom(params), desc, ""),
		Page:      q.ResolvePagination(PageParamsFrom(params)),
	}
}

func PageParamsFrom(params url.Values) types.PageParams {
	return types.PageParams{
		Page:    params.Get(ParamPage),
		PerPage: params.Get(ParamPerPage),
		Range:   params.Get(ParamRange),
	}
}

func SortParamsFrom(params url.Values) types.SortParams {
	return types.SortParams{
		Sort:   params.Get(ParamSort),
		SortBy: params.Get(ParamSortBy),
		Order:  params.Get(ParamOrder),
	}
}
