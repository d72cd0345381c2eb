package query

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/types"
)

// IsValidFieldName reports whether name is an acceptable field token: 1 to
// 100 ASCII letters, digits or underscores, not starting with a digit or an
// underscore.
func IsValidFieldName(name string) bool {
	return isValidFieldName(name, config.DefaultMaxFieldNameLength)
}

func isValidFieldName(name string, maxLength int) bool {
	if len(name) == 0 || len(name) > maxLength {
		return false
	}

	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9', ch == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ValidateValueLength reports whether the value is within the length limit.
// Text is measured in characters, arrays by their serialized JSON length.
func ValidateValueLength(value types.Value) bool {
	return validateValueLength(value, config.DefaultMaxValueLength)
}

func validateValueLength(value types.Value, maxLength int) bool {
	return valueLength(value) <= maxLength
}

func valueLength(value types.Value) int {
	switch value.Kind {
	case types.KindText, types.KindUUID:
		return utf8.RuneCountInString(value.Text)
	case types.KindArray:
		serialized, err := json.Marshal(value.Interface())
		if err != nil {
			return int(^uint(0) >> 1)
		}
		return utf8.RuneCount(serialized)
	}
	return len(value.String())
}

// truncateForLog shortens untrusted input before it is written to a log entry.
func truncateForLog(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
