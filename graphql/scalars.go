package graphql

import (
	"encoding/json"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// jsonScalar carries a row as an opaque JSON object, so a single list type
// serves resources with any set of columns.
var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "Json",
	Description:  "The `Json` scalar type represents a JSON value, such as a row with all its columns.",
	Serialize:    identityFn,
	ParseValue:   deserializeJson,
	ParseLiteral: parseLiteralFromStringHandler(deserializeJson),
})

func identityFn(value interface{}) interface{} {
	return value
}

func parseLiteralFromStringHandler(parser graphql.ParseValueFn) graphql.ParseLiteralFn {
	return func(valueAST ast.Value) interface{} {
		switch valueAST := valueAST.(type) {
		case *ast.StringValue:
			return parser(valueAST.Value)
		}
		return nil
	}
}

func deserializeJson(value interface{}) interface{} {
	switch value := value.(type) {
	case string:
		var decoded interface{}
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return nil
		}
		return decoded
	case *string:
		if value == nil {
			return nil
		}
		return deserializeJson(*value)
	default:
		return value
	}
}
