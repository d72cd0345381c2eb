package schema

import "fmt"

// ColumnKind is the storage type family of a column as far as filtering is concerned.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindUUID
	KindTimestamp
	KindEnum
)

var columnKindNames = map[string]ColumnKind{
	"text":      KindText,
	"integer":   KindInteger,
	"float":     KindFloat,
	"boolean":   KindBoolean,
	"uuid":      KindUUID,
	"timestamp": KindTimestamp,
	"enum":      KindEnum,
}

func ParseColumnKind(name string) (ColumnKind, error) {
	if kind, ok := columnKindNames[name]; ok {
		return kind, nil
	}
	return KindText, fmt.Errorf("unknown column kind: %s", name)
}

func (k ColumnKind) String() string {
	for name, kind := range columnKindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// ColumnCapabilities describes what a request may do with a column.
type ColumnCapabilities struct {
	Kind       ColumnKind
	Filterable bool
	Sortable   bool
	Fulltext   bool
	Like       bool
}

// IsEnum reports whether the column stores an enumerated type that must be
// cast to text before it can be compared with a string.
func (c ColumnCapabilities) IsEnum() bool {
	return c.Kind == KindEnum
}

// IsSearchable reports whether the column takes part in the substring
// search used when a resource declares no full-text columns.
func (c ColumnCapabilities) IsSearchable() bool {
	return c.Filterable && (c.Kind == KindText || c.Kind == KindEnum || c.Like)
}
