package query

import "errors"

var (
	errNotAnObject  = errors.New("filter is not a JSON object")
	errTrailingData = errors.New("unexpected data after filter object")
)
