package query

import (
	"strings"

	"github.com/datastax/data-api-query/types"
)

var operatorSuffixes = []struct {
	suffix   string
	operator types.Operator
}{
	{"_gte", types.OpGte},
	{"_lte", types.OpLte},
	{"_gt", types.OpGt},
	{"_lt", types.OpLt},
	{"_neq", types.OpNeq},
}

const eqSuffix = "_eq"

// ParseComparisonOperator strips a trailing comparison suffix from a filter
// key. Only the last suffix is considered: "field_gte_lte" yields
// ("field_gte", OpLte). Keys without a recognized suffix, and keys ending in
// "_eq", compare for equality.
func ParseComparisonOperator(key string) (string, types.Operator) {
	for _, s := range operatorSuffixes {
		if strings.HasSuffix(key, s.suffix) {
			return strings.TrimSuffix(key, s.suffix), s.operator
		}
	}

	if strings.HasSuffix(key, eqSuffix) {
		return strings.TrimSuffix(key, eqSuffix), types.OpEq
	}

	return key, types.OpEq
}
