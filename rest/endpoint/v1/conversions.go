package endpoint

import (
	"github.com/datastax/data-api-query/schema"
)

func convertRows(desc *schema.Descriptor, values []map[string]interface{}) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(values))
	for _, row := range values {
		converted := make(map[string]interface{}, len(row))
		for column, value := range row {
			caps, _ := desc.Capabilities(column)
			converted[column] = schema.ToJSONValue(caps.Kind, value)
		}
		rows = append(rows, converted)
	}
	return rows
}
