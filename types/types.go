// types package contains the public API types
// that are shared between the compiler, REST and GraphQL
package types

import (
	"net/http"
	"strconv"
)

// Operator is the comparison carried by a filter clause.
type Operator int

const (
	OpEq Operator = iota
	OpGte
	OpLte
	OpGt
	OpLt
	OpNeq
)

// SQLOperators contains the SQL operator for a given comparison
var SQLOperators = map[Operator]string{
	OpEq:  "=",
	OpGte: ">=",
	OpLte: "<=",
	OpGt:  ">",
	OpLt:  "<",
	OpNeq: "!=",
}

func (o Operator) String() string {
	if s, ok := SQLOperators[o]; ok {
		return s
	}
	return "="
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindText ValueKind = iota
	KindUUID
	KindInteger
	KindFloat
	KindBool
	KindNull
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUUID:
		return "uuid"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Value is a classified filter literal. Only the field matching Kind is set;
// a UUID keeps its canonical text form in Text.
type Value struct {
	Kind  ValueKind
	Text  string
	Int   int64
	Float float64
	Bool  bool
	Items []Value
}

func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }
func UUIDValue(s string) Value { return Value{Kind: KindUUID, Text: s} }
func IntValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func NullValue() Value { return Value{Kind: KindNull} }
func ArrayValue(items []Value) Value { return Value{Kind: KindArray, Items: items} }

// IsScalar reports whether the value can be bound as a single query parameter.
func (v Value) IsScalar() bool {
	return v.Kind != KindNull && v.Kind != KindArray
}

// IsNumeric reports whether the value is an integer or a float.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInteger || v.Kind == KindFloat
}

// Interface returns the native Go value to bind as a query parameter.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindText, KindUUID:
		return v.Text
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindArray:
		items := make([]interface{}, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.Interface()
		}
		return items
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindText, KindUUID:
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNull:
		return "null"
	}
	return v.Kind.String()
}

// Clause is one parsed (field, operator, value) unit of a filter object.
type Clause struct {
	Field    string
	Operator Operator
	Value    Value
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

type SortSpec struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

type PageSpec struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// PageParams holds the raw pagination parameters of a request.
// Empty strings are treated as absent.
type PageParams struct {
	Page    string
	PerPage string
	Range   string
}

// SortParams holds the raw sort parameters of a request.
type SortParams struct {
	Sort   string
	SortBy string
	Order  string
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
