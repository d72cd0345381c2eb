package config

import "github.com/iancoleman/strcase"

type NamingConvention interface {
	// ToResourceName normalizes a resource name taken from a request path.
	ToResourceName(name string) string
	ToTableName(resource string) string

	ToGraphQLField(resource string) string
	ToGraphQLType(resource string) string
}

type NamingConventionFn func() NamingConvention

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToResourceName(name string) string {
	return strcase.ToSnake(name)
}

func (n *defaultNaming) ToTableName(resource string) string {
	return strcase.ToSnake(resource)
}

func (n *defaultNaming) ToGraphQLField(resource string) string {
	return strcase.ToLowerCamel(resource)
}

func (n *defaultNaming) ToGraphQLType(resource string) string {
	return strcase.ToCamel(resource)
}
