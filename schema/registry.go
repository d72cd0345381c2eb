package schema

import (
	"fmt"
	"sort"

	"github.com/datastax/data-api-query/config"
)

// Registry maps resource names to their descriptors. Resources are registered
// at startup; afterwards the registry is only read, so lookups take no lock.
type Registry struct {
	naming    config.NamingConvention
	resources map[string]*Descriptor
}

func NewRegistry(naming config.NamingConvention) *Registry {
	if naming == nil {
		naming = config.NewDefaultNaming()
	}
	return &Registry{
		naming:    naming,
		resources: make(map[string]*Descriptor),
	}
}

// NewRegistryFromConfig decodes, validates and registers every resource in raw.
func NewRegistryFromConfig(naming config.NamingConvention, raw interface{}) (*Registry, error) {
	defs, err := DecodeDefinitions(raw)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(naming)
	for _, def := range defs {
		if _, err := registry.Register(def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register validates a definition and adds its descriptor to the registry.
func (r *Registry) Register(def Definition) (*Descriptor, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	name := r.naming.ToResourceName(def.Name)
	if _, exists := r.resources[name]; exists {
		return nil, fmt.Errorf("resource %s already registered", name)
	}

	table := def.Table
	if table == "" {
		table = r.naming.ToTableName(def.Name)
	}

	def.Name = name
	desc, err := NewDescriptor(def, table)
	if err != nil {
		return nil, err
	}

	r.resources[name] = desc
	return desc, nil
}

// Lookup returns the descriptor of a resource by its (unnormalized) name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	desc, ok := r.resources[r.naming.ToResourceName(name)]
	return desc, ok
}

// Names returns the registered resource names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Naming() config.NamingConvention {
	return r.naming
}
