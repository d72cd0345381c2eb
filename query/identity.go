package query

import (
	"strconv"

	"github.com/google/uuid"

	c "github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

// IdentityCondition matches the single row identified by raw, a path
// segment. It reports false when raw cannot identify a row of the resource.
func IdentityCondition(desc *schema.Descriptor, raw string) (c.Condition, bool) {
	identity := desc.IdentityColumn()
	caps, _ := desc.Capabilities(identity)

	var value types.Value
	switch caps.Kind {
	case schema.KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, false
		}
		value = types.UUIDValue(id.String())
	case schema.KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false
		}
		value = types.IntValue(n)
	default:
		if raw == "" || len(raw) > config.DefaultMaxValueLength {
			return nil, false
		}
		value = types.TextValue(raw)
	}

	return c.Compare{Left: typed(identity, caps), Operator: types.OpEq, Value: value}, true
}
