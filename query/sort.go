package query

import (
	"encoding/json"
	"strings"

	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

// ResolveSort validates the requested sort column against the resource's
// sortable allow-list. The sort tuple ["column", "direction"] wins over
// sort_by and order. Unknown columns fall back to defaultColumn when it is
// sortable, and to the resource's default sort column otherwise. Any
// direction other than a case-insensitive "desc" sorts ascending.
func (q *Compiler) ResolveSort(raw types.SortParams, desc *schema.Descriptor, defaultColumn string) types.SortSpec {
	column, direction, ok := parseSortTuple(raw.Sort)
	if !ok {
		if raw.Sort != "" {
			q.logger.Debug("ignoring malformed sort tuple",
				"resource", desc.Name(), "sort", truncateForLog(raw.Sort))
		}
		column, direction = raw.SortBy, raw.Order
	}

	fallback := desc.DefaultSortColumn()
	if defaultColumn != "" && desc.IsSortable(defaultColumn) {
		fallback = defaultColumn
	}

	column = strings.TrimSpace(column)
	if !isValidFieldName(column, q.limits.MaxFieldNameLength) || !desc.IsSortable(column) {
		if column != "" {
			q.logger.Debug("sort column is not sortable, using fallback",
				"resource", desc.Name(), "column", truncateForLog(column), "fallback", fallback)
		}
		column = fallback
	}

	return types.SortSpec{Column: column, Direction: parseDirection(direction)}
}

func parseSortTuple(raw string) (column, direction string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return "", "", false
	}

	var tuple []string
	if err := json.Unmarshal([]byte(raw), &tuple); err != nil || len(tuple) == 0 || len(tuple) > 2 {
		return "", "", false
	}

	column = tuple[0]
	if len(tuple) == 2 {
		direction = tuple[1]
	}
	return column, direction, true
}

func parseDirection(direction string) types.Direction {
	if strings.EqualFold(strings.TrimSpace(direction), "desc") {
		return types.Descending
	}
	return types.Ascending
}
