package query

import (
	"strings"

	c "github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

const (
	searchKey = "q"
	idsKey    = "ids"
)

// parseClause resolves a filter key into an allow-listed field and operator
// and classifies its value. Rejected keys are logged and reported as !ok.
func (q *Compiler) parseClause(desc *schema.Descriptor, key string, raw interface{}) (types.Clause, bool) {
	field, operator := ParseComparisonOperator(key)

	// A column whose real name ends in a suffix ("created_gt") still matches
	// on equality when only the full key is declared.
	if !desc.IsFilterable(field) && desc.IsFilterable(key) {
		field, operator = key, types.OpEq
	}

	if !isValidFieldName(field, q.limits.MaxFieldNameLength) {
		q.logger.Warn("ignoring filter with invalid field name",
			"resource", desc.Name(), "key", truncateForLog(key))
		return types.Clause{}, false
	}

	if !desc.IsFilterable(field) {
		q.logger.Debug("ignoring filter on non filterable field",
			"resource", desc.Name(), "field", field)
		return types.Clause{}, false
	}

	value, ok := ClassifyValue(raw)
	if !ok {
		q.logger.Debug("ignoring filter with unsupported value",
			"resource", desc.Name(), "field", field)
		return types.Clause{}, false
	}

	if !validateValueLength(value, q.limits.MaxValueLength) {
		q.logger.Warn("ignoring filter value exceeding maximum length",
			"resource", desc.Name(), "field", field, "maxLength", q.limits.MaxValueLength)
		return types.Clause{}, false
	}

	return types.Clause{Field: field, Operator: operator, Value: value}, true
}

// buildCondition turns a validated clause into a condition node. It returns
// nil when the clause has no meaningful condition and must be dropped.
func (q *Compiler) buildCondition(desc *schema.Descriptor, clause types.Clause) c.Condition {
	caps, _ := desc.Capabilities(clause.Field)
	value := clause.Value

	switch value.Kind {
	case types.KindNull:
		if clause.Operator != types.OpEq {
			q.logger.Debug("ignoring null filter with comparison operator",
				"resource", desc.Name(), "field", clause.Field, "operator", clause.Operator.String())
			return nil
		}
		return c.IsNull{Column: clause.Field}

	case types.KindArray:
		return q.inCondition(desc, clause, caps)

	case types.KindText:
		// Equality on text always goes through a cast of the column.
		if clause.Operator == types.OpEq {
			return textCondition(desc, clause, caps)
		}
	}

	if !bindable(caps.Kind, value) {
		q.logger.Debug("ignoring filter value not matching column type",
			"resource", desc.Name(), "field", clause.Field, "kind", caps.Kind.String(), "valueKind", value.Kind.String())
		return nil
	}

	operator := clause.Operator
	if value.Kind == types.KindBool && operator != types.OpEq && operator != types.OpNeq {
		q.logger.Debug("range operator on boolean filter treated as equality",
			"resource", desc.Name(), "field", clause.Field, "operator", operator.String())
		operator = types.OpEq
	}

	if asText(caps.Kind, value) {
		return c.Compare{Left: column(clause.Field, caps), Operator: operator, Value: types.TextValue(value.String())}
	}
	return c.Compare{Left: typed(clause.Field, caps), Operator: operator, Value: value}
}

func textCondition(desc *schema.Descriptor, clause types.Clause, caps schema.ColumnCapabilities) c.Condition {
	text := clause.Value.Text

	switch {
	case caps.Like:
		return c.Contains{Left: column(clause.Field, caps), Value: text}
	case caps.IsEnum():
		return c.EnumEquals{Column: clause.Field, Value: text, CaseSensitive: desc.EnumCaseSensitive()}
	case strings.TrimSpace(text) == "":
		return c.Compare{Left: column(clause.Field, caps), Operator: types.OpEq, Value: clause.Value}
	}
	return c.EqualFold{Left: column(clause.Field, caps), Value: text}
}

// inCondition matches the column against the array elements. Elements the
// column cannot be compared with are skipped.
func (q *Compiler) inCondition(desc *schema.Descriptor, clause types.Clause, caps schema.ColumnCapabilities) c.Condition {
	values := make([]types.Value, 0, len(clause.Value.Items))
	for _, item := range clause.Value.Items {
		if !bindable(caps.Kind, item) {
			continue
		}
		if asText(caps.Kind, item) {
			item = types.TextValue(item.String())
		}
		values = append(values, item)
	}

	if skipped := len(clause.Value.Items) - len(values); skipped > 0 {
		q.logger.Debug("skipped array elements not matching column type",
			"resource", desc.Name(), "field", clause.Field, "skipped", skipped)
	}

	if len(values) == 0 {
		q.logger.Debug("ignoring filter with empty array",
			"resource", desc.Name(), "field", clause.Field)
		return nil
	}
	return c.In{Left: typed(clause.Field, caps), Values: values}
}

// buildIdentity matches any of the given identifiers against the identity
// column. Elements that do not fit the identity column's kind are skipped.
func (q *Compiler) buildIdentity(desc *schema.Descriptor, raw interface{}) c.Condition {
	identity := desc.IdentityColumn()
	caps, _ := desc.Capabilities(identity)

	elements, ok := raw.([]interface{})
	if !ok {
		elements = []interface{}{raw}
	}

	values := make([]types.Value, 0, len(elements))
	skipped := 0
	for _, element := range elements {
		value, ok := ClassifyValue(element)
		if !ok || !acceptsIdentity(caps.Kind, value) {
			skipped++
			continue
		}
		values = append(values, value)
	}

	if skipped > 0 {
		q.logger.Debug("skipped malformed identifiers",
			"resource", desc.Name(), "skipped", skipped)
	}

	if len(values) == 0 {
		return nil
	}

	ids := types.ArrayValue(values)
	if !validateValueLength(ids, q.limits.MaxValueLength) {
		q.logger.Warn("ignoring identifier list exceeding maximum length",
			"resource", desc.Name(), "maxLength", q.limits.MaxValueLength)
		return nil
	}

	return c.In{Left: typed(identity, caps), Values: values}
}

func acceptsIdentity(kind schema.ColumnKind, value types.Value) bool {
	switch kind {
	case schema.KindUUID:
		return value.Kind == types.KindUUID
	case schema.KindInteger:
		return value.Kind == types.KindInteger
	case schema.KindText, schema.KindEnum:
		return value.Kind == types.KindText || value.Kind == types.KindUUID
	}
	return value.IsScalar()
}

// bindable reports whether a scalar can be compared with a column of the
// given kind without the backend rejecting the parameter. Text and enum
// columns take any scalar through its text form.
func bindable(kind schema.ColumnKind, value types.Value) bool {
	switch kind {
	case schema.KindText, schema.KindEnum:
		return value.IsScalar()
	case schema.KindInteger, schema.KindFloat:
		return value.IsNumeric()
	case schema.KindUUID:
		return value.Kind == types.KindUUID
	case schema.KindBoolean:
		return value.Kind == types.KindBool
	case schema.KindTimestamp:
		return value.Kind == types.KindText
	}
	return false
}

// asText reports whether a number or boolean is compared with a text or enum
// column and must be bound as text.
func asText(kind schema.ColumnKind, value types.Value) bool {
	if kind != schema.KindText && kind != schema.KindEnum {
		return false
	}
	return value.IsNumeric() || value.Kind == types.KindBool
}

// column references a declared column for string matching, cast to text
// unless it is already stored as text.
func column(name string, caps schema.ColumnCapabilities) c.Column {
	return c.Column{Name: name, AsText: caps.Kind != schema.KindText}
}

// typed references a declared column for exact comparison. Only enum columns
// are cast; the backend coerces the bound value for the other kinds.
func typed(name string, caps schema.ColumnCapabilities) c.Column {
	return c.Column{Name: name, AsText: caps.IsEnum()}
}
