package models

// Column describes how a column of a resource can be queried
type Column struct {
	Name string `json:"name"`

	// The storage type family of the column
	Kind string `json:"kind"`

	Filterable bool `json:"filterable"`
	Sortable   bool `json:"sortable"`
	Fulltext   bool `json:"fulltext"`
	Like       bool `json:"like"`
}
