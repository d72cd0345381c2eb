package schema

import "github.com/google/uuid"

// ToJSONValue normalizes a driver value of a column of the given kind to the
// form it takes in a JSON response, such as booleans stored as integers.
func ToJSONValue(kind ColumnKind, value interface{}) interface{} {
	switch kind {
	case KindBoolean:
		switch v := value.(type) {
		case int64:
			return v != 0
		case string:
			return v == "1" || v == "true" || v == "t"
		}
	case KindFloat:
		if v, ok := value.(int64); ok {
			return float64(v)
		}
	case KindUUID:
		if v, ok := value.([16]byte); ok {
			return uuid.UUID(v).String()
		}
	}
	return value
}
