package models

type Rows struct {
	Rows  []map[string]interface{} `json:"rows"`
	Count int                      `json:"_count"`

	// Total number of rows matching the filter, ignoring pagination
	Total uint64 `json:"total"`
}
