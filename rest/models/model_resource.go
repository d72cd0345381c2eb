package models

// A resource exposed through the list endpoints
type Resource struct {
	Name string `json:"name"`

	// The column identifying a single row
	IdentityColumn string `json:"identityColumn"`

	// The column rows are sorted by when no valid sort is requested
	DefaultSort string `json:"defaultSort"`

	Columns []Column `json:"columns"`
}
