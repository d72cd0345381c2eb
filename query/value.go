package query

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/datastax/data-api-query/types"
)

// ClassifyValue maps a decoded JSON value into a typed literal. The decoder
// must have been configured with UseNumber so integers and floats can be
// told apart. Objects are not supported.
func ClassifyValue(raw interface{}) (types.Value, bool) {
	switch v := raw.(type) {
	case nil:
		return types.NullValue(), true
	case string:
		return classifyString(v), true
	case bool:
		return types.BoolValue(v), true
	case json.Number:
		return classifyNumber(v)
	case float64:
		return types.FloatValue(v), true
	case []interface{}:
		value, _ := classifyArray(v)
		return value, true
	}
	return types.Value{}, false
}

// classifyString gives precedence to UUID literals: an exact identifier match
// must never be turned into a text search.
func classifyString(s string) types.Value {
	if id, err := uuid.Parse(s); err == nil {
		return types.UUIDValue(id.String())
	}
	return types.TextValue(s)
}

func classifyNumber(n json.Number) (types.Value, bool) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return types.IntValue(i), true
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return types.Value{}, false
	}
	return types.FloatValue(f), true
}

// classifyArray keeps scalar elements and reports how many were skipped
// (nulls, nested arrays and objects).
func classifyArray(raw []interface{}) (types.Value, int) {
	items := make([]types.Value, 0, len(raw))
	skipped := 0
	for _, element := range raw {
		value, ok := ClassifyValue(element)
		if !ok || !value.IsScalar() {
			skipped++
			continue
		}
		items = append(items, value)
	}
	return types.ArrayValue(items), skipped
}
