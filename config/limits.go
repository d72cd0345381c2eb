package config

import (
	"fmt"

	"github.com/datastax/data-api-query/internal/validation"
)

const (
	DefaultMaxPageSize        = 1000
	DefaultMaxOffset          = 1000000
	DefaultPageSize           = 10
	DefaultMaxFieldNameLength = 100
	DefaultMaxValueLength     = 10000
	// DefaultFulltextWarnColumns is the number of full-text columns above which
	// a LIKE based search is reported as a candidate for a dedicated engine.
	DefaultFulltextWarnColumns = 3
)

// Limits bounds the work a single request can cause.
type Limits struct {
	MaxPageSize         uint64 `mapstructure:"max-page-size" validate:"gte=1,lte=1000"`
	MaxOffset           uint64 `mapstructure:"max-offset" validate:"lte=1000000"`
	DefaultPageSize     uint64 `mapstructure:"default-page-size" validate:"gte=1,ltefield=MaxPageSize"`
	MaxFieldNameLength  int    `mapstructure:"max-field-name-length" validate:"gte=1,lte=100"`
	MaxValueLength      int    `mapstructure:"max-value-length" validate:"gte=1,lte=10000"`
	FulltextWarnColumns int    `mapstructure:"fulltext-warn-columns" validate:"gte=0"`
}

// Validate checks the limits against their hard bounds. Limits may be
// lowered but never raised above the defaults.
func (l Limits) Validate() error {
	if err := validation.Struct(l); err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	return nil
}

func DefaultLimits() Limits {
	return Limits{
		MaxPageSize:         DefaultMaxPageSize,
		MaxOffset:           DefaultMaxOffset,
		DefaultPageSize:     DefaultPageSize,
		MaxFieldNameLength:  DefaultMaxFieldNameLength,
		MaxValueLength:      DefaultMaxValueLength,
		FulltextWarnColumns: DefaultFulltextWarnColumns,
	}
}

// OrDefault replaces unset (zero) limits with their defaults.
func (l Limits) OrDefault() Limits {
	d := DefaultLimits()
	if l.MaxPageSize == 0 {
		l.MaxPageSize = d.MaxPageSize
	}
	if l.MaxOffset == 0 {
		l.MaxOffset = d.MaxOffset
	}
	if l.DefaultPageSize == 0 {
		l.DefaultPageSize = d.DefaultPageSize
	}
	if l.DefaultPageSize > l.MaxPageSize {
		l.DefaultPageSize = l.MaxPageSize
	}
	if l.MaxFieldNameLength == 0 {
		l.MaxFieldNameLength = d.MaxFieldNameLength
	}
	if l.MaxValueLength == 0 {
		l.MaxValueLength = d.MaxValueLength
	}
	if l.FulltextWarnColumns == 0 {
		l.FulltextWarnColumns = d.FulltextWarnColumns
	}
	return l
}
