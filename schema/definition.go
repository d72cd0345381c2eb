package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/datastax/data-api-query/internal/validation"
)

// ColumnDefinition declares a column of a resource and what requests may do with it.
type ColumnDefinition struct {
	Name       string `mapstructure:"name" validate:"required,identifier"`
	Kind       string `mapstructure:"kind" validate:"required,oneof=text integer float boolean uuid timestamp enum"`
	Filterable bool   `mapstructure:"filterable"`
	Sortable   bool   `mapstructure:"sortable"`
	Fulltext   bool   `mapstructure:"fulltext"`
	Like       bool   `mapstructure:"like"`
}

// Definition is the static declaration of a resource, usually read from the
// "resources" section of the configuration file.
type Definition struct {
	Name              string             `mapstructure:"name" validate:"required,identifier"`
	Table             string             `mapstructure:"table" validate:"identifier"`
	IdentityColumn    string             `mapstructure:"identity-column" validate:"identifier"`
	DefaultSort       string             `mapstructure:"default-sort" validate:"identifier"`
	EnumCaseSensitive bool               `mapstructure:"enum-case-sensitive"`
	Columns           []ColumnDefinition `mapstructure:"columns" validate:"required,min=1,dive"`
}

// Validate checks the definition and returns a readable error describing
// every failed constraint.
func (d Definition) Validate() error {
	if err := validation.Struct(d); err != nil {
		return fmt.Errorf("resource %q: %w", d.Name, err)
	}
	return nil
}

// DecodeDefinitions decodes raw configuration (as returned by viper.Get) into
// resource definitions. Unknown keys are rejected so that typos in capability
// flags do not silently disable filtering.
func DecodeDefinitions(raw interface{}) ([]Definition, error) {
	var defs []Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &defs,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("unable to decode resource definitions: %w", err)
	}

	return defs, nil
}
