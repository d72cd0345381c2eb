package schema

import (
	"fmt"
	"sort"
)

const DefaultIdentityColumn = "id"

// Descriptor is the read-only registry of queryable columns for a single
// resource. It is built once when the resource is registered and then shared
// by every request.
type Descriptor struct {
	name              string
	table             string
	identity          string
	defaultSort       string
	enumCaseSensitive bool
	columns           map[string]ColumnCapabilities
	order             []string
	fulltext          []string
}

// NewDescriptor builds the capability map of a resource from its definition.
// The definition is expected to have passed Validate.
func NewDescriptor(def Definition, table string) (*Descriptor, error) {
	d := &Descriptor{
		name:              def.Name,
		table:             table,
		identity:          def.IdentityColumn,
		defaultSort:       def.DefaultSort,
		enumCaseSensitive: def.EnumCaseSensitive,
		columns:           make(map[string]ColumnCapabilities, len(def.Columns)),
	}

	if d.identity == "" {
		d.identity = DefaultIdentityColumn
	}

	for _, col := range def.Columns {
		if _, exists := d.columns[col.Name]; exists {
			return nil, fmt.Errorf("resource %s: duplicate column %s", def.Name, col.Name)
		}

		kind, err := ParseColumnKind(col.Kind)
		if err != nil {
			return nil, fmt.Errorf("resource %s: column %s: %w", def.Name, col.Name, err)
		}

		d.columns[col.Name] = ColumnCapabilities{
			Kind:       kind,
			Filterable: col.Filterable,
			Sortable:   col.Sortable,
			Fulltext:   col.Fulltext,
			Like:       col.Like,
		}
		d.order = append(d.order, col.Name)
		if col.Fulltext {
			d.fulltext = append(d.fulltext, col.Name)
		}
	}

	if _, ok := d.columns[d.identity]; !ok {
		return nil, fmt.Errorf("resource %s: identity column %s is not declared", def.Name, d.identity)
	}

	if d.defaultSort == "" {
		if d.IsSortable(d.identity) {
			d.defaultSort = d.identity
		} else if sortable := d.SortableColumns(); len(sortable) > 0 {
			d.defaultSort = sortable[0]
		}
	}

	if !d.IsSortable(d.defaultSort) {
		return nil, fmt.Errorf("resource %s: default sort column %q is not sortable", def.Name, d.defaultSort)
	}

	return d, nil
}

func (d *Descriptor) Name() string {
	return d.name
}

func (d *Descriptor) Table() string {
	return d.table
}

func (d *Descriptor) IdentityColumn() string {
	return d.identity
}

func (d *Descriptor) DefaultSortColumn() string {
	return d.defaultSort
}

func (d *Descriptor) EnumCaseSensitive() bool {
	return d.enumCaseSensitive
}

// Capabilities returns the capabilities of a declared column.
func (d *Descriptor) Capabilities(name string) (ColumnCapabilities, bool) {
	c, ok := d.columns[name]
	return c, ok
}

// Columns returns every declared column in declaration order.
func (d *Descriptor) Columns() []string {
	return append([]string(nil), d.order...)
}

func (d *Descriptor) IsFilterable(name string) bool {
	return d.columns[name].Filterable
}

func (d *Descriptor) IsSortable(name string) bool {
	return d.columns[name].Sortable
}

func (d *Descriptor) IsLikeFilterable(name string) bool {
	c, ok := d.columns[name]
	return ok && c.Filterable && c.Like
}

func (d *Descriptor) IsEnumField(name string) bool {
	return d.columns[name].IsEnum()
}

func (d *Descriptor) FilterableColumns() []string {
	return d.collect(func(c ColumnCapabilities) bool { return c.Filterable })
}

func (d *Descriptor) SortableColumns() []string {
	return d.collect(func(c ColumnCapabilities) bool { return c.Sortable })
}

func (d *Descriptor) LikeFilterableColumns() []string {
	return d.collect(func(c ColumnCapabilities) bool { return c.Filterable && c.Like })
}

// SearchableColumns returns the columns a free-text query falls back to when
// no full-text columns are declared.
func (d *Descriptor) SearchableColumns() []string {
	return d.collect(func(c ColumnCapabilities) bool { return c.IsSearchable() })
}

// FulltextSearchableColumns returns the full-text columns in declaration order.
// The order is significant: it is the concatenation order of the search text.
func (d *Descriptor) FulltextSearchableColumns() []string {
	return append([]string(nil), d.fulltext...)
}

func (d *Descriptor) collect(predicate func(ColumnCapabilities) bool) []string {
	var names []string
	for name, c := range d.columns {
		if predicate(c) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
