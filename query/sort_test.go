package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datastax/data-api-query/internal/testutil"
	"github.com/datastax/data-api-query/types"
)

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name     string
		params   types.SortParams
		expected types.SortSpec
	}{
		{"defaults", types.SortParams{}, types.SortSpec{Column: "id", Direction: types.Ascending}},
		{"sort by", types.SortParams{SortBy: "score", Order: "desc"}, types.SortSpec{Column: "score", Direction: types.Descending}},
		{"mixed case direction", types.SortParams{SortBy: "score", Order: "DeSc"}, types.SortSpec{Column: "score", Direction: types.Descending}},
		{"unknown direction", types.SortParams{SortBy: "score", Order: "sideways"}, types.SortSpec{Column: "score", Direction: types.Ascending}},
		{"not sortable", types.SortParams{SortBy: "secret", Order: "desc"}, types.SortSpec{Column: "id", Direction: types.Descending}},
		{"filterable only", types.SortParams{SortBy: "completed"}, types.SortSpec{Column: "id", Direction: types.Ascending}},
		{"injection", types.SortParams{SortBy: "score; DROP TABLE tasks"}, types.SortSpec{Column: "id", Direction: types.Ascending}},
		{"tuple", types.SortParams{Sort: `["title","DESC"]`}, types.SortSpec{Column: "title", Direction: types.Descending}},
		{"tuple wins", types.SortParams{Sort: `["title","DESC"]`, SortBy: "score", Order: "asc"},
			types.SortSpec{Column: "title", Direction: types.Descending}},
		{"column only tuple", types.SortParams{Sort: `["status"]`}, types.SortSpec{Column: "status", Direction: types.Ascending}},
		{"malformed tuple", types.SortParams{Sort: `title,DESC`, SortBy: "score", Order: "desc"},
			types.SortSpec{Column: "score", Direction: types.Descending}},
		{"tuple with unsortable column", types.SortParams{Sort: `["completed","asc"]`},
			types.SortSpec{Column: "id", Direction: types.Ascending}},
	}

	q := newTestCompiler()
	desc := testutil.TasksDescriptor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, q.ResolveSort(tt.params, desc, ""))
		})
	}
}

func TestResolveSortDefaultColumn(t *testing.T) {
	q := newTestCompiler()
	desc := testutil.TasksDescriptor()

	assert.Equal(t, "score", q.ResolveSort(types.SortParams{}, desc, "score").Column)
	assert.Equal(t, "title", q.ResolveSort(types.SortParams{SortBy: "title"}, desc, "score").Column)
	assert.Equal(t, "id", q.ResolveSort(types.SortParams{}, desc, "secret").Column)
}
